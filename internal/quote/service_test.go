package quote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/deskpet/panel/internal/config"
	"github.com/deskpet/panel/internal/ticker"
)

type fakeClient struct {
	quote string
	err   error
}

func (f *fakeClient) FetchQuote(context.Context) (string, error) { return f.quote, f.err }

func testCfg() *config.TextAPICfg {
	return &config.TextAPICfg{
		Host:                  "example.test",
		APIKey:                "k",
		QuoteRefreshSeconds:   60,
		QuotePriority:         20,
		BackoffFloorSeconds:   5,
		BackoffCeilingSeconds: 300,
	}
}

// TestService_PushesQuoteOnSuccess: a fetched quote lands on the ticker
// with the configured priority and a TTL of one refresh interval.
func TestService_PushesQuoteOnSuccess(t *testing.T) {
	mock := clock.NewMock()
	q := ticker.NewQueue(mock)
	s := New(testCfg(), &fakeClient{quote: "carpe diem"}, q, mock, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	require.Eventually(t, func() bool { return q.Current() == "carpe diem" },
		time.Second, 2*time.Millisecond)

	// the quote outlives most of its interval but not all of it
	mock.Add(59 * time.Second)
	require.Equal(t, "carpe diem", q.Current())
}

// TestService_NoPushOnFailure keeps the ticker silent.
func TestService_NoPushOnFailure(t *testing.T) {
	mock := clock.NewMock()
	q := ticker.NewQueue(mock)
	s := New(testCfg(), &fakeClient{err: errors.New("api down")}, q, mock, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	require.Eventually(t, func() bool { return s.Snapshot().Err != "" },
		time.Second, 2*time.Millisecond)
	require.Equal(t, "", q.Current())
}
