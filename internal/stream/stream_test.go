package stream

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dmetrikx/learnkeybot/internal/ai"
	"github.com/Dmetrikx/learnkeybot/internal/personality"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// step is one fragment arrival, delay after the previous one
type step struct {
	delay time.Duration
	text  string
}

// scriptedSource replays steps against a fake clock
type scriptedSource struct {
	clock      *fakeClock
	steps      []step
	completion ai.Completion
	failWith   error
	pos        int
	done       bool
}

func (s *scriptedSource) Recv() (ai.Fragment, error) {
	if s.pos >= len(s.steps) {
		s.done = true
		if s.failWith != nil {
			return ai.Fragment{}, s.failWith
		}
		return ai.Fragment{}, io.EOF
	}
	st := s.steps[s.pos]
	s.pos++
	s.clock.Advance(st.delay)
	return ai.Fragment{Text: st.text}, nil
}

func (s *scriptedSource) Completion() ai.Completion {
	if !s.done {
		return ai.Pending
	}
	return s.completion
}

type push struct {
	at      time.Time
	preview string
}

// recordingHandler keeps every log record for assertions
type recordingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *recordingHandler) WithGroup(string) slog.Handler { return h }

func (h *recordingHandler) count(level slog.Level) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, r := range h.records {
		if r.Level >= level {
			n++
		}
	}
	return n
}

func newTestThrottler(interval time.Duration, previewLimit int) (*Throttler, *fakeClock, *recordingHandler) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	handler := &recordingHandler{}
	return &Throttler{
		MinInterval:  interval,
		PreviewLimit: previewLimit,
		Clock:        clock,
		Logger:       slog.New(handler),
	}, clock, handler
}

func TestThrottlerNoPushWithinFirstInterval(t *testing.T) {
	throttler, clock, _ := newTestThrottler(time.Second, 1000)

	// 50 fragments within 0.3s
	steps := make([]step, 50)
	for i := range steps {
		steps[i] = step{delay: 6 * time.Millisecond, text: "x"}
	}
	source := &scriptedSource{clock: clock, steps: steps, completion: ai.ExplicitDone}

	var pushes []push
	session := throttler.NewSession(MessageRef{ChannelID: "c", MessageID: "m"})
	result := throttler.Consume(context.Background(), session, source, func(_ context.Context, preview string) error {
		pushes = append(pushes, push{at: clock.Now(), preview: preview})
		return nil
	})

	assert.Empty(t, pushes)
	assert.Equal(t, 0, result.Pushes)
	assert.Equal(t, strings.Repeat("x", 50), result.Text)
	assert.Equal(t, ai.ExplicitDone, result.Completion)
	assert.NoError(t, result.Err)
	assert.Equal(t, session.ID, result.SessionID)
}

func TestThrottlerRespectsMinInterval(t *testing.T) {
	throttler, clock, _ := newTestThrottler(time.Second, 1000)

	// a fragment every 300ms for 6 seconds
	steps := make([]step, 20)
	for i := range steps {
		steps[i] = step{delay: 300 * time.Millisecond, text: "word "}
	}
	source := &scriptedSource{clock: clock, steps: steps, completion: ai.ConnectionClosed}

	start := clock.Now()
	var pushes []push
	session := throttler.NewSession(MessageRef{ChannelID: "c", MessageID: "m"})
	result := throttler.Consume(context.Background(), session, source, func(_ context.Context, preview string) error {
		pushes = append(pushes, push{at: clock.Now(), preview: preview})
		return nil
	})

	require.NotEmpty(t, pushes)
	assert.Equal(t, len(pushes), result.Pushes)
	assert.GreaterOrEqual(t, pushes[0].at.Sub(start), time.Second)
	for i := 1; i < len(pushes); i++ {
		assert.GreaterOrEqual(t, pushes[i].at.Sub(pushes[i-1].at), time.Second, "push %d too early", i)
		assert.NotEqual(t, pushes[i].preview, pushes[i-1].preview)
	}
	// 6s of generation at one push per second at most
	assert.LessOrEqual(t, len(pushes), 6)
	assert.Equal(t, strings.Repeat("word ", 20), result.Text)
	assert.Equal(t, ai.ConnectionClosed, result.Completion)
}

func TestThrottlerTruncatesPreview(t *testing.T) {
	throttler, clock, _ := newTestThrottler(time.Second, 10)

	source := &scriptedSource{
		clock: clock,
		steps: []step{
			{delay: 0, text: "abcdefghij"},
			{delay: 2 * time.Second, text: "klmnop"},
		},
		completion: ai.ExplicitDone,
	}

	var previews []string
	session := throttler.NewSession(MessageRef{})
	result := throttler.Consume(context.Background(), session, source, func(_ context.Context, preview string) error {
		previews = append(previews, preview)
		return nil
	})

	assert.Equal(t, []string{"abcdefghij..."}, previews)
	assert.Equal(t, "abcdefghijklmnop", result.Text, "the buffer is never truncated")
}

func TestThrottlerNotModifiedIsSuccess(t *testing.T) {
	throttler, clock, logs := newTestThrottler(time.Second, 1000)

	source := &scriptedSource{
		clock: clock,
		steps: []step{
			{delay: 1500 * time.Millisecond, text: "one"},
			{delay: 1500 * time.Millisecond, text: " two"},
		},
		completion: ai.ExplicitDone,
	}

	calls := 0
	session := throttler.NewSession(MessageRef{})
	result := throttler.Consume(context.Background(), session, source, func(context.Context, string) error {
		calls++
		return errors.New("HTTP 400 Bad Request: Message is not modified")
	})

	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, result.Pushes)
	assert.Equal(t, "one two", result.Text)
	assert.Equal(t, "one two", session.LastPreview)
	assert.Zero(t, logs.count(slog.LevelWarn), "no-op edits must not be logged as failures")
}

func TestThrottlerPreviewFailureDoesNotStopStream(t *testing.T) {
	throttler, clock, logs := newTestThrottler(time.Second, 1000)

	source := &scriptedSource{
		clock: clock,
		steps: []step{
			{delay: 1100 * time.Millisecond, text: "alpha"},
			{delay: 1100 * time.Millisecond, text: " beta"},
			{delay: 100 * time.Millisecond, text: " gamma"},
		},
		completion: ai.ExplicitDone,
	}

	calls := 0
	session := throttler.NewSession(MessageRef{})
	result := throttler.Consume(context.Background(), session, source, func(context.Context, string) error {
		calls++
		return errors.New("rate limited")
	})

	assert.Equal(t, 2, calls)
	assert.Zero(t, result.Pushes)
	assert.Empty(t, session.LastPreview)
	assert.Equal(t, "alpha beta gamma", result.Text)
	assert.Equal(t, 2, logs.count(slog.LevelWarn))
	assert.Zero(t, logs.count(slog.LevelError))
}

func TestThrottlerKeepsPartialTextOnFailure(t *testing.T) {
	throttler, clock, _ := newTestThrottler(time.Second, 1000)

	streamErr := &ai.StreamError{Backend: "hosted", Err: errors.New("connection reset")}
	source := &scriptedSource{
		clock:      clock,
		steps:      []step{{text: "partial "}, {text: "answer"}},
		completion: ai.StreamFailed,
		failWith:   streamErr,
	}

	result := throttler.Consume(context.Background(), throttler.NewSession(MessageRef{}), source, func(context.Context, string) error {
		return nil
	})

	assert.Equal(t, "partial answer", result.Text)
	assert.Equal(t, ai.StreamFailed, result.Completion)
	assert.ErrorIs(t, result.Err, streamErr)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", Preview("short", 10))
	assert.Equal(t, "exactly10!", Preview("exactly10!", 10))
	assert.Equal(t, "héllo...", Preview("héllo wörld", 5))
}

func TestChunk(t *testing.T) {
	tests := []struct {
		name  string
		len   int
		max   int
		sizes []int
	}{
		{name: "empty", len: 0, max: 4000, sizes: nil},
		{name: "fits", len: 1500, max: 2000, sizes: []int{1500}},
		{name: "exact", len: 2000, max: 2000, sizes: []int{2000}},
		{name: "one over", len: 2001, max: 2000, sizes: []int{2000, 1}},
		{name: "remainder", len: 9000, max: 4000, sizes: []int{4000, 4000, 1000}},
		{name: "multiple", len: 8000, max: 4000, sizes: []int{4000, 4000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			for i := 0; i < tt.len; i++ {
				sb.WriteByte(byte('a' + i%26))
			}
			text := sb.String()

			chunks := Chunk(text, tt.max)
			require.Len(t, chunks, len(tt.sizes))
			for i, c := range chunks {
				assert.Len(t, c, tt.sizes[i])
			}
			assert.Equal(t, text, strings.Join(chunks, ""))
		})
	}
}

func TestChunkCountsRunes(t *testing.T) {
	text := strings.Repeat("ж", 5)
	chunks := Chunk(text, 2)
	assert.Equal(t, []string{"жж", "жж", "ж"}, chunks)
}

func TestFinalizeCapsLock(t *testing.T) {
	v := personality.HostedProfile.Defaults.Clone()
	v.Toggles[personality.CapsLock] = personality.On

	once := Finalize("Hello, wörld!", v, 2000)
	require.Len(t, once, 1)
	assert.Equal(t, "HELLO, WÖRLD!", once[0])

	twice := Finalize(once[0], v, 2000)
	assert.Equal(t, once, twice)

	v.Toggles[personality.CapsLock] = personality.Off
	assert.Equal(t, []string{"Hello"}, Finalize("Hello", v, 2000))
}

// fakeTransport records calls and fails the ones listed in failOn
type fakeTransport struct {
	edits  []string
	sends  []string
	failOn map[int]error
	calls  int
}

func (f *fakeTransport) next() error {
	err := f.failOn[f.calls]
	f.calls++
	return err
}

func (f *fakeTransport) Send(_ context.Context, channelID, text string) (MessageRef, error) {
	if err := f.next(); err != nil {
		return MessageRef{}, err
	}
	f.sends = append(f.sends, text)
	return MessageRef{ChannelID: channelID, MessageID: "new"}, nil
}

func (f *fakeTransport) Edit(_ context.Context, _ MessageRef, text string) error {
	if err := f.next(); err != nil {
		return err
	}
	f.edits = append(f.edits, text)
	return nil
}

func TestDeliver(t *testing.T) {
	logger := slog.New(&recordingHandler{})
	placeholder := MessageRef{ChannelID: "chan", MessageID: "ph"}

	t.Run("edit then send", func(t *testing.T) {
		tr := &fakeTransport{}
		err := Deliver(context.Background(), tr, placeholder, []string{"a", "b", "c"}, logger)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, tr.edits)
		assert.Equal(t, []string{"b", "c"}, tr.sends)
	})

	t.Run("failed chunk does not stop delivery", func(t *testing.T) {
		sendErr := errors.New("missing access")
		tr := &fakeTransport{failOn: map[int]error{1: sendErr}}
		err := Deliver(context.Background(), tr, placeholder, []string{"a", "b", "c"}, logger)

		var deliveryErr *DeliveryError
		require.ErrorAs(t, err, &deliveryErr)
		assert.Equal(t, 3, deliveryErr.Total)
		require.Len(t, deliveryErr.Failures, 1)
		assert.Equal(t, 1, deliveryErr.Failures[0].Index)
		assert.ErrorIs(t, err, sendErr)
		assert.Equal(t, []string{"c"}, tr.sends)
	})

	t.Run("not modified final edit", func(t *testing.T) {
		tr := &fakeTransport{failOn: map[int]error{0: errors.New("message not modified")}}
		assert.NoError(t, Deliver(context.Background(), tr, placeholder, []string{"same"}, logger))
	})
}

func TestPreviewEditFitsMessageLimit(t *testing.T) {
	const messageLimit = 2000
	limit := messageLimit - PreviewOverhead

	edit := PreviewHeader + Preview(strings.Repeat("é", 5000), limit)
	assert.Equal(t, messageLimit, utf8.RuneCountInString(edit))

	short := PreviewHeader + Preview("short answer", limit)
	assert.Less(t, utf8.RuneCountInString(short), messageLimit)
}
