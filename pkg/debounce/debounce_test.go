package debounce

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2025, 11, 12, 9, 0, 0, 0, time.UTC)

type firing struct {
	value string
	at    time.Duration
}

func newTestDebouncer(t *testing.T) (*Debouncer, *clockwork.FakeClock, <-chan firing) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(start)
	fired := make(chan firing, 16)
	d := New(DefaultDelay, clock, func(v string) {
		fired <- firing{value: v, at: clock.Since(start)}
	})
	return d, clock, fired
}

func expectFiring(t *testing.T, fired <-chan firing, want firing) {
	t.Helper()
	select {
	case got := <-fired:
		require.Equal(t, want, got)
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %q", want.value)
	}
}

func expectQuiet(t *testing.T, fired <-chan firing) {
	t.Helper()
	select {
	case got := <-fired:
		t.Fatalf("unexpected firing %+v", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBurstFiresOnceWithLastValue(t *testing.T) {
	d, clock, fired := newTestDebouncer(t)

	d.Push("a")
	clock.Advance(100 * time.Millisecond)
	d.Push("ab")
	clock.Advance(200 * time.Millisecond)
	d.Push("abc")

	clock.Advance(499 * time.Millisecond)
	expectQuiet(t, fired)

	clock.Advance(time.Millisecond)
	expectFiring(t, fired, firing{value: "abc", at: 800 * time.Millisecond})

	clock.Advance(2 * time.Second)
	expectQuiet(t, fired)
}

func TestSpacedInputsFireTwice(t *testing.T) {
	d, clock, fired := newTestDebouncer(t)

	d.Push("a")
	clock.Advance(500 * time.Millisecond)
	expectFiring(t, fired, firing{value: "a", at: 500 * time.Millisecond})

	clock.Advance(100 * time.Millisecond)
	d.Push("b")
	clock.Advance(500 * time.Millisecond)
	expectFiring(t, fired, firing{value: "b", at: 1100 * time.Millisecond})
}

func TestPendingAndDue(t *testing.T) {
	d, clock, fired := newTestDebouncer(t)

	_, ok := d.Pending()
	require.False(t, ok)
	require.True(t, d.due().IsZero())

	d.Push("paris")
	v, ok := d.Pending()
	require.True(t, ok)
	require.Equal(t, "paris", v)
	require.Equal(t, start.Add(DefaultDelay), d.due())

	clock.Advance(DefaultDelay)
	expectFiring(t, fired, firing{value: "paris", at: DefaultDelay})
	_, ok = d.Pending()
	require.False(t, ok)
}

func TestCancelPreventsFiring(t *testing.T) {
	d, clock, fired := newTestDebouncer(t)

	d.Cancel()
	d.Push("a")
	d.Cancel()
	d.Cancel()

	clock.Advance(time.Second)
	expectQuiet(t, fired)
}

func TestStaleTimerIsIgnored(t *testing.T) {
	d, _, fired := newTestDebouncer(t)

	d.Push("old")
	d.mu.Lock()
	stale := d.gen
	d.mu.Unlock()
	d.Push("new")

	// A timer that began running just before being superseded.
	d.fire(stale)
	expectQuiet(t, fired)

	v, ok := d.Pending()
	require.True(t, ok)
	require.Equal(t, "new", v)
}

func TestFlushDeliversImmediately(t *testing.T) {
	d, clock, fired := newTestDebouncer(t)

	require.False(t, d.Flush())

	d.Push("coffee")
	require.True(t, d.Flush())
	expectFiring(t, fired, firing{value: "coffee", at: 0})

	clock.Advance(time.Second)
	expectQuiet(t, fired)
}

func TestStopIgnoresLaterPushes(t *testing.T) {
	d, clock, fired := newTestDebouncer(t)

	d.Push("a")
	d.Stop()
	d.Push("b")
	clock.Advance(time.Second)
	expectQuiet(t, fired)
}

func TestRealClockBurst(t *testing.T) {
	fired := make(chan string, 16)
	d := New(20*time.Millisecond, nil, func(v string) { fired <- v })

	for _, v := range []string{"b", "be", "bea", "beac", "beach"} {
		d.Push(v)
	}

	select {
	case v := <-fired:
		require.Equal(t, "beach", v)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for debounced value")
	}
	select {
	case v := <-fired:
		t.Fatalf("unexpected second firing %q", v)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDefaults(t *testing.T) {
	d := New(0, nil, func(string) {})
	require.Equal(t, DefaultDelay, d.Delay())
}

func TestStopWaitsForRunningCallback(t *testing.T) {
	clock := clockwork.NewFakeClockAt(start)
	entered := make(chan struct{})
	release := make(chan struct{})
	d := New(DefaultDelay, clock, func(string) {
		close(entered)
		<-release
	})

	d.Push("slow")
	clock.Advance(DefaultDelay)
	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("callback never started")
	}

	stopped := make(chan struct{})
	go func() {
		d.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
		t.Fatal("Stop returned while the callback was running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return after the callback finished")
	}
}
