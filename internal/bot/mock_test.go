package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Dmetrikx/learnkeybot/internal/ai"
	"github.com/Dmetrikx/learnkeybot/internal/config"
	"github.com/Dmetrikx/learnkeybot/internal/personality"
)

const (
	testBotID     = "bot-id"
	testUserID    = "user-1"
	testChannelID = "dm-channel"
)

type sentMessage struct {
	channelID  string
	content    string
	components []discordgo.MessageComponent
}

type editedMessage struct {
	messageID string
	content   string
}

// mockDiscordSession is a mock implementation for testing
type mockDiscordSession struct {
	sentMessages []sentMessage
	edits        []editedMessage
	responses    []*discordgo.InteractionResponse
	nextID       int
}

func (m *mockDiscordSession) Open() error {
	return nil
}

func (m *mockDiscordSession) Close() error {
	return nil
}

func (m *mockDiscordSession) User(userID string, options ...discordgo.RequestOption) (*discordgo.User, error) {
	return &discordgo.User{ID: testBotID, Username: "learnkey"}, nil
}

func (m *mockDiscordSession) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	return m.send(channelID, content, nil), nil
}

func (m *mockDiscordSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	return m.send(channelID, data.Content, data.Components), nil
}

func (m *mockDiscordSession) send(channelID, content string, components []discordgo.MessageComponent) *discordgo.Message {
	m.nextID++
	m.sentMessages = append(m.sentMessages, sentMessage{channelID, content, components})
	return &discordgo.Message{
		ID:        fmt.Sprintf("msg-%d", m.nextID),
		ChannelID: channelID,
		Content:   content,
	}
}

func (m *mockDiscordSession) ChannelMessageEdit(channelID, messageID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.edits = append(m.edits, editedMessage{messageID, content})
	return &discordgo.Message{ID: messageID, ChannelID: channelID, Content: content}, nil
}

func (m *mockDiscordSession) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
	m.responses = append(m.responses, resp)
	return nil
}

func (m *mockDiscordSession) AddHandler(handler interface{}) func() {
	return func() {}
}

func (m *mockDiscordSession) lastEdit() string {
	if len(m.edits) == 0 {
		return ""
	}
	return m.edits[len(m.edits)-1].content
}

// fakeStream replays fragments, then ends with failWith or io.EOF
type fakeStream struct {
	fragments  []string
	completion ai.Completion
	failWith   error
	pos        int
	closed     bool
}

func (s *fakeStream) Recv() (ai.Fragment, error) {
	if s.pos < len(s.fragments) {
		s.pos++
		return ai.Fragment{Text: s.fragments[s.pos-1]}, nil
	}
	if s.failWith != nil {
		return ai.Fragment{}, s.failWith
	}
	return ai.Fragment{}, io.EOF
}

func (s *fakeStream) Completion() ai.Completion {
	if s.pos < len(s.fragments) {
		return ai.Pending
	}
	return s.completion
}

func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

// fakeGenerator records requests and hands out one scripted stream
type fakeGenerator struct {
	stream   *fakeStream
	err      error
	requests []ai.Request
}

func (g *fakeGenerator) Generate(ctx context.Context, req ai.Request) (ai.FragmentStream, error) {
	g.requests = append(g.requests, req)
	if g.err != nil {
		return nil, g.err
	}
	return g.stream, nil
}

func (g *fakeGenerator) Probe(ctx context.Context) error {
	return errors.New("offline")
}

type fakeExtractor struct {
	text string
	got  []byte
}

func (e *fakeExtractor) ExtractText(data []byte) string {
	e.got = data
	return e.text
}

func testConfig() *config.Config {
	return &config.Config{
		Backend:               config.BackendHosted,
		UpdateInterval:        time.Second,
		PreviewLimit:          1000,
		MaxMessageLength:      2000,
		MaxConcurrentSessions: 2,
		GenerationTimeout:     5 * time.Second,
	}
}

func newTestBot(t *testing.T, gen *fakeGenerator, extractor TextExtractor) (*Bot, *mockDiscordSession) {
	t.Helper()

	profile := personality.HostedProfile
	composer, err := ai.NewComposer(profile, time.UTC)
	if err != nil {
		t.Fatalf("NewComposer() error = %v", err)
	}

	if extractor == nil {
		extractor = &fakeExtractor{}
	}

	session := &mockDiscordSession{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	b := newBot(session, gen, composer, personality.NewStore(profile), extractor, testConfig(), logger)
	b.botUserID = testBotID
	b.now = func() time.Time { return time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC) }
	return b, session
}

func directMessage(content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		ID:        "in-1",
		ChannelID: testChannelID,
		Content:   content,
		Author:    &discordgo.User{ID: testUserID, Username: "student"},
	}}
}
