package dispatch

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func warnings(hook *test.Hook) []string {
	var out []string
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			out = append(out, e.Message)
		}
	}
	return out
}

func TestDispatcher_RunsJobsAndDrainsOnClose(t *testing.T) {
	logger, _ := test.NewNullLogger()
	d := New(2, 16, time.Second, logger)

	var ran atomic.Int32
	for i := 0; i < 10; i++ {
		d.Dispatch("count", func(ctx context.Context) error {
			ran.Add(1)
			return nil
		})
	}
	d.Close()

	assert.Equal(t, int32(10), ran.Load())
}

func TestDispatcher_FailuresAndPanicsAreLogged(t *testing.T) {
	logger, hook := test.NewNullLogger()
	d := New(1, 4, time.Second, logger)

	d.Dispatch("ledger", func(ctx context.Context) error { return errors.New("sheets down") })
	d.Dispatch("sms", func(ctx context.Context) error { panic("boom") })
	var after atomic.Bool
	d.Dispatch("after", func(ctx context.Context) error {
		after.Store(true)
		return nil
	})
	d.Close()

	msgs := warnings(hook)
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0], "job failed name=ledger")
	assert.Contains(t, msgs[1], "job panicked name=sms")
	assert.True(t, after.Load(), "a panicking job must not kill its worker")
}

func TestDispatcher_TimeoutCancelsJobContext(t *testing.T) {
	logger, hook := test.NewNullLogger()
	d := New(1, 1, 20*time.Millisecond, logger)

	d.Dispatch("hang", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	d.Close()

	msgs := warnings(hook)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], context.DeadlineExceeded.Error())
}

func TestDispatcher_DropsWhenQueueFull(t *testing.T) {
	logger, hook := test.NewNullLogger()
	d := New(1, 1, time.Second, logger)

	started := make(chan struct{})
	release := make(chan struct{})
	var ran atomic.Int32

	d.Dispatch("blocking", func(ctx context.Context) error {
		close(started)
		<-release
		ran.Add(1)
		return nil
	})
	<-started

	d.Dispatch("queued", func(ctx context.Context) error {
		ran.Add(1)
		return nil
	})
	d.Dispatch("dropped", func(ctx context.Context) error {
		ran.Add(1)
		return nil
	})

	close(release)
	d.Close()

	assert.Equal(t, int32(2), ran.Load())
	msgs := warnings(hook)
	require.Len(t, msgs, 1)
	assert.True(t, strings.Contains(msgs[0], "queue full") && strings.Contains(msgs[0], "name=dropped"))
}

func TestDispatcher_DispatchAfterClose(t *testing.T) {
	logger, hook := test.NewNullLogger()
	d := New(1, 1, time.Second, logger)
	d.Close()
	d.Close()

	d.Dispatch("late", func(ctx context.Context) error {
		t.Fatalf("job must not run after close")
		return nil
	})

	msgs := warnings(hook)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "after shutdown")
}
