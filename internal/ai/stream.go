package ai

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
)

// Stream reads fragments from an open generation response, one transport
// line at a time. It is not safe for concurrent use.
type Stream struct {
	ctx        context.Context
	body       io.ReadCloser
	reader     *bufio.Reader
	variant    variant
	logger     *slog.Logger
	completion Completion
	err        error // terminal error returned by every Recv after the end
	skipped    int
}

func newStream(ctx context.Context, body io.ReadCloser, v variant, logger *slog.Logger) *Stream {
	return &Stream{
		ctx:     ctx,
		body:    body,
		reader:  bufio.NewReader(body),
		variant: v,
		logger:  logger,
	}
}

// Recv returns the next non-empty text fragment. It returns io.EOF after an
// explicit completion marker or a clean close, and a *StreamError if the
// connection failed mid-stream. Malformed lines are logged and skipped.
func (s *Stream) Recv() (Fragment, error) {
	for {
		if s.err != nil {
			return Fragment{}, s.err
		}

		line, readErr := s.reader.ReadBytes('\n')

		var frag Fragment
		var ok bool
		if len(line) > 0 {
			var decErr error
			frag, ok, decErr = s.variant.decode(line)
			if decErr != nil {
				s.skipped++
				s.logSkipped(decErr)
			}
		}

		switch {
		case ok && frag.Done:
			s.finish(ExplicitDone, io.EOF)
		case readErr != nil:
			s.finishRead(readErr)
		}

		if ok && frag.Text != "" {
			return Fragment{Text: frag.Text}, nil
		}
	}
}

func (s *Stream) logSkipped(err error) {
	var recErr *StreamRecordError
	if errors.As(err, &recErr) {
		s.logger.WarnContext(s.ctx, "backend reported an error mid-stream",
			"backend", recErr.Backend,
			"code", recErr.Code,
			"message", recErr.Message)
		return
	}
	s.logger.WarnContext(s.ctx, "skipping malformed stream record",
		"backend", s.variant.name(),
		"error", err)
}

// Completion reports how the stream ended, or Pending while it is open
func (s *Stream) Completion() Completion {
	return s.completion
}

// Skipped returns the number of malformed records dropped so far
func (s *Stream) Skipped() int {
	return s.skipped
}

// Close releases the response body. It is safe to call more than once.
func (s *Stream) Close() error {
	if s.err == nil {
		s.finish(ConnectionClosed, io.EOF)
	}
	return nil
}

func (s *Stream) finishRead(err error) {
	if errors.Is(err, io.EOF) {
		s.finish(ConnectionClosed, io.EOF)
		return
	}

	s.logger.WarnContext(s.ctx, "generation stream interrupted",
		"backend", s.variant.name(),
		"error", err)
	s.finish(StreamFailed, &StreamError{Backend: s.variant.name(), Err: err})
}

func (s *Stream) finish(c Completion, err error) {
	s.completion = c
	s.err = err
	_ = s.body.Close()
}
