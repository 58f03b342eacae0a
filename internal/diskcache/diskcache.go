// Package diskcache persists small JSON seed records under a state
// directory. The records exist only to pre-seed pollers across restarts:
// a missing, unreadable or corrupt file is a cache miss, never an error the
// caller has to handle.
package diskcache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/zeebo/xxh3"
)

const sumExt = ".sum"

type Store struct {
	dir string
}

// New ensures the state dir exists. A dir that cannot be created still
// yields a usable Store: every Save degrades to a logged no-op and every
// Load to a miss.
func New(dir string) *Store {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Error().Err(err).Str("dir", dir).Msg("state dir unavailable, persistence disabled")
	}
	return &Store{dir: dir}
}

// Save marshals v and writes it atomically (temp file + rename) together
// with an xxh3 checksum sidecar. Failures are logged and swallowed:
// persistence is an optimization, not a correctness requirement.
func (s *Store) Save(name string, v any) {
	path := filepath.Join(s.dir, name)
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("cache record marshal failed")
		return
	}
	if err := writeAtomic(path, data); err != nil {
		log.Error().Err(err).Str("file", path).Msg("cache record write failed")
		return
	}
	sum := fmt.Sprintf("%016x", xxh3.Hash(data))
	if err := writeAtomic(path+sumExt, []byte(sum)); err != nil {
		log.Error().Err(err).Str("file", path).Msg("cache checksum write failed")
	}
}

// Load reads and unmarshals the named record into v. It reports false on
// any problem, including a checksum mismatch against the sidecar. A record
// without a sidecar is accepted as-is.
func (s *Store) Load(name string, v any) bool {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if want, err := os.ReadFile(path + sumExt); err == nil {
		got := fmt.Sprintf("%016x", xxh3.Hash(data))
		if got != string(want) {
			log.Warn().Str("file", path).Msg("cache checksum mismatch, record dropped")
			return false
		}
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Warn().Err(err).Str("file", path).Msg("cache record unreadable, record dropped")
		return false
	}
	return true
}

// writeAtomic guarantees readers never observe a half-written record even
// if the process dies mid-write.
func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
