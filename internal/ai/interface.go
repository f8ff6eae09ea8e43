package ai

import "context"

// FragmentStream is a finite, non-restartable sequence of fragments.
// Recv returns io.EOF once the stream has ended normally.
type FragmentStream interface {
	Recv() (Fragment, error)
	Completion() Completion
	Close() error
}

// Generator defines the streaming generation operations used by the bot
type Generator interface {
	// Generate opens a streamed generation. It fails with a
	// *BackendUnavailableError before any fragment when the backend cannot be reached.
	Generate(ctx context.Context, req Request) (FragmentStream, error)

	// Probe sends a tiny non-streamed request to check connectivity
	Probe(ctx context.Context) error
}
