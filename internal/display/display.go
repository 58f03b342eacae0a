// Package display is the boundary to the physical panel. The driver and
// the page renderers are external collaborators: the render loop only
// needs an opaque sink for fixed-size pixel buffers and a pure function
// from snapshot to frame.
package display

import "github.com/deskpet/panel/internal/snapshot"

// Page names in rotation order.
const (
	PageClock   = "clock"
	PageWeather = "weather"
	PageStatus  = "status"
)

// Render turns one snapshot plus the current ticker text into a frame for
// the named page. Pure; no I/O.
type Render func(snap snapshot.Snapshot, tickerText, page string) []byte

// FrameSink accepts frames of exactly width*height*2 bytes (RGB565).
type FrameSink interface {
	Show(frame []byte) error
	Close() error
}

// Noop discards frames; used headless and in tests.
type Noop struct{}

func (Noop) Show([]byte) error { return nil }
func (Noop) Close() error      { return nil }

// BlankRender produces an all-black frame of the configured size. It
// stands in until a real renderer is wired.
func BlankRender(width, height int) Render {
	size := width * height * 2
	return func(snapshot.Snapshot, string, string) []byte {
		return make([]byte, size)
	}
}
