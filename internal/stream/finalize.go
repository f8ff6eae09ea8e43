package stream

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/Dmetrikx/learnkeybot/internal/personality"
)

// DefaultMaxMessageLength is Discord's per-message character limit
const DefaultMaxMessageLength = 2000

// Finalize applies the vector's final text transforms and splits the result
// into transport-sized chunks.
func Finalize(text string, v personality.Vector, maxLen int) []string {
	if v.CapsLock() {
		text = strings.ToUpper(text)
	}
	return Chunk(text, maxLen)
}

// Chunk splits text into consecutive pieces of exactly size runes, the last
// one holding the remainder. Boundaries ignore words. Empty text yields no
// chunks.
func Chunk(text string, size int) []string {
	if text == "" {
		return nil
	}
	if size <= 0 || utf8.RuneCountInString(text) <= size {
		return []string{text}
	}

	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := min(start+size, len(runes))
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// ChunkFailure records one chunk the transport rejected
type ChunkFailure struct {
	Index int
	Err   error
}

// DeliveryError is returned when some chunks of a final answer could not be
// delivered.
type DeliveryError struct {
	Total    int
	Failures []ChunkFailure
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to deliver %d of %d chunks: %v", len(e.Failures), e.Total, e.Failures[0].Err)
}

func (e *DeliveryError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}

// Deliver replaces the placeholder with the first chunk and sends the rest
// as new messages in order. A failed chunk does not stop the remaining ones.
func Deliver(ctx context.Context, t Transport, placeholder MessageRef, chunks []string, logger *slog.Logger) error {
	var failures []ChunkFailure

	for i, chunk := range chunks {
		var err error
		if i == 0 {
			err = t.Edit(ctx, placeholder, chunk)
			if IsNotModified(err) {
				err = nil
			}
		} else {
			_, err = t.Send(ctx, placeholder.ChannelID, chunk)
		}

		if err != nil {
			logger.ErrorContext(ctx, "failed to deliver response chunk",
				"channel_id", placeholder.ChannelID,
				"chunk_index", i,
				"chunk_count", len(chunks),
				"error", err)
			failures = append(failures, ChunkFailure{Index: i, Err: err})
		}
	}

	if len(failures) > 0 {
		return &DeliveryError{Total: len(chunks), Failures: failures}
	}
	return nil
}
