package stream

import (
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Dmetrikx/learnkeybot/internal/ai"
)

// Session is the state of one in-flight streamed answer. It is owned by a
// single handler goroutine.
type Session struct {
	ID          string
	Placeholder MessageRef
	Started     time.Time
	LastPush    time.Time
	LastPreview string
	Completion  ai.Completion

	buffer  strings.Builder
	limiter *rate.Limiter
	pushes  int
}

// Text returns everything accumulated so far
func (s *Session) Text() string {
	return s.buffer.String()
}

// Pushes returns how many previews were published
func (s *Session) Pushes() int {
	return s.pushes
}
