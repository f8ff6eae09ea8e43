package ai

// Backend variants and their request defaults
const (
	BackendHosted = "hosted"
	BackendLocal  = "local"

	DefaultHostedBaseURL = "https://openrouter.ai/api/v1"
	DefaultLocalBaseURL  = "http://localhost:11434"
	DefaultHostedModel   = "deepseek/deepseek-r1:free"
	DefaultLocalModel    = "llama3.1"

	// ProbeMaxTokens bounds the one-off startup connectivity request
	ProbeMaxTokens = 10

	sseDataPrefix   = "data:"
	sseDoneSentinel = "[DONE]"
)

// Fragment is one decoded unit of a streamed generation: a text delta, or
// the terminal done marker.
type Fragment struct {
	Text string
	Done bool
}

// Completion reports how a stream ended
type Completion int

const (
	// Pending means the stream is still open
	Pending Completion = iota
	// ExplicitDone means the backend sent its completion marker
	ExplicitDone
	// ConnectionClosed means the backend closed the body without a marker
	ConnectionClosed
	// StreamFailed means reading the body failed mid-stream
	StreamFailed
)

func (c Completion) String() string {
	switch c {
	case ExplicitDone:
		return "explicit_done"
	case ConnectionClosed:
		return "connection_closed"
	case StreamFailed:
		return "error"
	default:
		return "pending"
	}
}

// Request is a fully rendered model request
type Request struct {
	SystemInstructions string
	UserContent        string
}
