package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// variant captures everything that differs between backends: request
// encoding, line decoding and the connectivity probe.
type variant interface {
	name() string
	newRequest(ctx context.Context, req Request) (*http.Request, error)
	// decode turns one transport line into a fragment. ok is false for lines
	// that carry no record (blank lines, SSE comments); a non-nil error means
	// the line was malformed or reported a backend error and must be skipped.
	decode(line []byte) (frag Fragment, ok bool, err error)
	probe(ctx context.Context) error
}

// hostedVariant talks to an OpenAI-compatible router (OpenRouter) over SSE.
// Records are "data: <json>" lines and the stream ends with "data: [DONE]".
type hostedVariant struct {
	endpoint string
	apiKey   string
	model    string
	openai   *openai.Client
}

func newHostedVariant(baseURL, apiKey, model string, httpClient *http.Client) *hostedVariant {
	baseURL = strings.TrimRight(baseURL, "/")

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	cfg.HTTPClient = httpClient

	return &hostedVariant{
		endpoint: baseURL + "/chat/completions",
		apiKey:   apiKey,
		model:    model,
		openai:   openai.NewClientWithConfig(cfg),
	}
}

func (v *hostedVariant) name() string { return BackendHosted }

func (v *hostedVariant) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	body := openai.ChatCompletionRequest{
		Model: v.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemInstructions},
			{Role: openai.ChatMessageRoleUser, Content: req.UserContent},
		},
		Stream: true,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("Authorization", "Bearer "+v.apiKey)
	return httpReq, nil
}

// hostedChunk is a streamed completion chunk that may carry an error object
type hostedChunk struct {
	openai.ChatCompletionStreamResponse
	Error *struct {
		Code    any    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (v *hostedVariant) decode(line []byte) (Fragment, bool, error) {
	line = bytes.TrimSpace(line)
	// blank separators, ": OPENROUTER PROCESSING" keep-alives, event:/id: fields
	if len(line) == 0 || !bytes.HasPrefix(line, []byte(sseDataPrefix)) {
		return Fragment{}, false, nil
	}

	data := bytes.TrimSpace(line[len(sseDataPrefix):])
	if string(data) == sseDoneSentinel {
		return Fragment{Done: true}, true, nil
	}

	var chunk hostedChunk
	if err := json.Unmarshal(data, &chunk); err != nil {
		return Fragment{}, false, &StreamDecodeError{Line: string(line), Err: err}
	}

	// OpenRouter reports provider failures after the 200 as an error record
	if chunk.Error != nil {
		return Fragment{}, false, &StreamRecordError{
			Backend: BackendHosted,
			Code:    fmt.Sprint(chunk.Error.Code),
			Message: chunk.Error.Message,
		}
	}

	if len(chunk.Choices) == 0 {
		return Fragment{}, true, nil
	}
	return Fragment{Text: chunk.Choices[0].Delta.Content}, true, nil
}

func (v *hostedVariant) probe(ctx context.Context) error {
	_, err := v.openai.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     v.model,
		MaxTokens: ProbeMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: "Test connection"},
		},
	})
	return err
}

// localVariant talks to an Ollama server: one JSON object per line, the last
// carrying "done": true.
type localVariant struct {
	endpoint   string
	model      string
	httpClient *http.Client
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

type ollamaChunk struct {
	Model   string        `json:"model"`
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

func newLocalVariant(baseURL, model string, httpClient *http.Client) *localVariant {
	return &localVariant{
		endpoint:   strings.TrimRight(baseURL, "/") + "/api/chat",
		model:      model,
		httpClient: httpClient,
	}
}

func (v *localVariant) name() string { return BackendLocal }

func (v *localVariant) encode(ctx context.Context, req Request, stream bool) (*http.Request, error) {
	body := ollamaRequest{
		Model: v.model,
		Messages: []ollamaMessage{
			{Role: "system", Content: req.SystemInstructions},
			{Role: "user", Content: req.UserContent},
		},
		Stream: stream,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return httpReq, nil
}

func (v *localVariant) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	return v.encode(ctx, req, true)
}

func (v *localVariant) decode(line []byte) (Fragment, bool, error) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return Fragment{}, false, nil
	}

	var chunk ollamaChunk
	if err := json.Unmarshal(line, &chunk); err != nil {
		return Fragment{}, false, &StreamDecodeError{Line: string(line), Err: err}
	}
	return Fragment{Text: chunk.Message.Content, Done: chunk.Done}, true, nil
}

func (v *localVariant) probe(ctx context.Context) error {
	httpReq, err := v.encode(ctx, Request{UserContent: "Test connection"}, false)
	if err != nil {
		return err
	}

	resp, err := v.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
