package stream

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/Dmetrikx/learnkeybot/internal/ai"
)

const (
	DefaultMinInterval  = 2 * time.Second
	DefaultPreviewLimit = 1000
	ellipsis            = "..."

	// PreviewHeader prefixes every live preview edit
	PreviewHeader = "🤖 Generating response...\n\n"
)

// PreviewOverhead is the number of runes a preview edit adds on top of its
// limit: the header plus the truncation ellipsis.
var PreviewOverhead = utf8.RuneCountInString(PreviewHeader) + utf8.RuneCountInString(ellipsis)

// FragmentSource yields generation fragments in arrival order
type FragmentSource interface {
	Recv() (ai.Fragment, error)
	Completion() ai.Completion
}

// UpdateFunc publishes a preview of the in-progress answer
type UpdateFunc func(ctx context.Context, preview string) error

// Result is the outcome of consuming one stream
type Result struct {
	SessionID  string
	Text       string
	Completion ai.Completion
	Pushes     int
	Err        error // non-nil when the stream failed mid-way
}

// Throttler accumulates fragments and publishes rate-limited previews
type Throttler struct {
	MinInterval  time.Duration
	PreviewLimit int
	Clock        Clock
	Logger       *slog.Logger
}

// NewThrottler creates a Throttler reading the system clock
func NewThrottler(minInterval time.Duration, previewLimit int, logger *slog.Logger) *Throttler {
	return &Throttler{
		MinInterval:  minInterval,
		PreviewLimit: previewLimit,
		Clock:        SystemClock{},
		Logger:       logger,
	}
}

// NewSession starts a session whose placeholder was just sent. The
// placeholder counts as the latest update, so the first preview waits a
// full interval.
func (t *Throttler) NewSession(placeholder MessageRef) *Session {
	interval := t.MinInterval
	if interval <= 0 {
		interval = DefaultMinInterval
	}

	now := t.clock().Now()
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	limiter.AllowN(now, 1)

	return &Session{
		ID:          uuid.NewString(),
		Placeholder: placeholder,
		Started:     now,
		LastPush:    now,
		Completion:  ai.Pending,
		limiter:     limiter,
	}
}

// Consume drains source into s. Text is appended as soon as it arrives;
// onUpdate is called only when the preview changed and the interval since
// the last push has elapsed. Preview failures never stop the stream.
func (t *Throttler) Consume(ctx context.Context, s *Session, source FragmentSource, onUpdate UpdateFunc) Result {
	var streamErr error
	for {
		frag, err := source.Recv()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				streamErr = err
			}
			break
		}
		if frag.Text == "" {
			continue
		}

		s.buffer.WriteString(frag.Text)
		t.maybePush(ctx, s, onUpdate)
	}

	s.Completion = source.Completion()
	t.logger().InfoContext(ctx, "generation stream finished",
		"session_id", s.ID,
		"completion", s.Completion.String(),
		"response_length", s.buffer.Len(),
		"preview_pushes", s.pushes,
		"duration_ms", t.clock().Now().Sub(s.Started).Milliseconds())

	return Result{
		SessionID:  s.ID,
		Text:       s.buffer.String(),
		Completion: s.Completion,
		Pushes:     s.pushes,
		Err:        streamErr,
	}
}

func (t *Throttler) maybePush(ctx context.Context, s *Session, onUpdate UpdateFunc) {
	preview := Preview(s.buffer.String(), t.previewLimit())
	if preview == s.LastPreview {
		return
	}

	now := t.clock().Now()
	if !s.limiter.AllowN(now, 1) {
		return
	}
	s.LastPush = now

	if err := onUpdate(ctx, preview); err != nil && !IsNotModified(err) {
		// keep the old snapshot so the next window retries with fresh text
		t.logger().WarnContext(ctx, "preview update failed",
			"session_id", s.ID,
			"error", err)
		return
	}

	s.LastPreview = preview
	s.pushes++
}

// Preview truncates text to limit runes, marking truncation with an ellipsis
func Preview(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit]) + ellipsis
}

func (t *Throttler) previewLimit() int {
	if t.PreviewLimit <= 0 {
		return DefaultPreviewLimit
	}
	return t.PreviewLimit
}

func (t *Throttler) clock() Clock {
	if t.Clock == nil {
		return SystemClock{}
	}
	return t.Clock
}

func (t *Throttler) logger() *slog.Logger {
	if t.Logger == nil {
		return slog.Default()
	}
	return t.Logger
}
