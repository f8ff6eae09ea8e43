package bot

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/sync/semaphore"

	"github.com/Dmetrikx/learnkeybot/internal/ai"
	"github.com/Dmetrikx/learnkeybot/internal/config"
	"github.com/Dmetrikx/learnkeybot/internal/discord"
	"github.com/Dmetrikx/learnkeybot/internal/pdf"
	"github.com/Dmetrikx/learnkeybot/internal/personality"
	"github.com/Dmetrikx/learnkeybot/internal/stream"
)

// TextExtractor pulls plain text out of a document, "" when there is none
type TextExtractor interface {
	ExtractText(data []byte) string
}

// Bot represents the Discord bot
type Bot struct {
	session    discord.Session
	messenger  *discord.Messenger
	generator  ai.Generator
	composer   *ai.Composer
	store      *personality.Store
	throttler  *stream.Throttler
	extractor  TextExtractor
	httpClient *http.Client
	sessions   *semaphore.Weighted
	config     *config.Config
	now        func() time.Time
	botUserID  string
	logger     *slog.Logger
}

// NewBot creates a new bot instance
func NewBot(cfg *config.Config, logger *slog.Logger) (*Bot, error) {
	session, err := discord.NewDiscordSession(cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	opts := ai.Options{Backend: cfg.Backend, Model: cfg.Model}
	switch cfg.Backend {
	case config.BackendLocal:
		opts.BaseURL = cfg.OllamaURL
	default:
		opts.BaseURL = cfg.OpenRouterBaseURL
		opts.APIKey = cfg.OpenRouterAPIKey
	}

	client, err := ai.NewClient(opts, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating generation client: %w", err)
	}

	profile := personality.ProfileFor(cfg.Backend)
	composer, err := ai.NewComposer(profile, cfg.Location())
	if err != nil {
		return nil, err
	}

	bot := newBot(session, client, composer, personality.NewStore(profile), pdf.NewExtractor(logger), cfg, logger)

	session.AddHandler(bot.messageHandler)
	session.AddHandler(bot.interactionHandler)

	return bot, nil
}

func newBot(session discord.Session, generator ai.Generator, composer *ai.Composer, store *personality.Store,
	extractor TextExtractor, cfg *config.Config, logger *slog.Logger) *Bot {
	limit := cfg.MaxConcurrentSessions
	if limit <= 0 {
		limit = config.DefaultMaxConcurrentSessions
	}

	return &Bot{
		session:    session,
		messenger:  discord.NewMessenger(session),
		generator:  generator,
		composer:   composer,
		store:      store,
		throttler:  stream.NewThrottler(cfg.UpdateInterval, cfg.PreviewLimit, logger),
		extractor:  extractor,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		sessions:   semaphore.NewWeighted(limit),
		config:     cfg,
		now:        time.Now,
		logger:     logger,
	}
}

// Start opens the gateway connection and checks the generation backend once
func (b *Bot) Start(ctx context.Context) error {
	err := b.session.Open()
	if err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	user, err := b.session.User("@me")
	if err != nil {
		return fmt.Errorf("error obtaining account details: %w", err)
	}
	b.botUserID = user.ID

	b.logger.InfoContext(ctx, "bot started",
		"username", user.Username,
		"user_id", user.ID,
		"profile", b.store.Profile().Name)

	// An unreachable backend is reported but does not stop the bot; each
	// request surfaces its own error to the user.
	if err := b.generator.Probe(ctx); err != nil {
		b.logger.WarnContext(ctx, "generation backend probe failed", "error", err)
	}

	return nil
}

// Close closes the bot session
func (b *Bot) Close(ctx context.Context) error {
	b.logger.InfoContext(ctx, "closing bot session")
	return b.session.Close()
}

// messageHandler handles incoming messages
func (b *Bot) messageHandler(_ *discordgo.Session, m *discordgo.MessageCreate) {
	b.handleMessage(context.Background(), m)
}

// interactionHandler handles button presses
func (b *Bot) interactionHandler(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	b.handleInteraction(context.Background(), i)
}

func (b *Bot) handleMessage(ctx context.Context, m *discordgo.MessageCreate) {
	// Ignore bots, including ourselves
	if m.Author == nil || m.Author.Bot || m.Author.ID == b.botUserID {
		return
	}

	// In servers only messages that mention the bot are for us
	if m.GuildID != "" && !mentions(m.Mentions, b.botUserID) {
		return
	}

	content := stripMention(m.Content, b.botUserID)

	if strings.HasPrefix(content, CommandPrefix) {
		b.handleCommand(ctx, m, content)
		return
	}

	if len(m.Attachments) > 0 {
		b.handleDocument(ctx, m, m.Attachments[0], content)
		return
	}

	if content == "" {
		return
	}

	b.handleText(ctx, m, content)
}

func (b *Bot) handleCommand(ctx context.Context, m *discordgo.MessageCreate, content string) {
	parts := strings.Fields(content)
	if len(parts) == 0 {
		return
	}
	command := strings.ToLower(strings.TrimPrefix(parts[0], CommandPrefix))

	b.logger.InfoContext(ctx, "received command",
		"command", command,
		"user_id", m.Author.ID,
		"username", m.Author.Username,
		"channel_id", m.ChannelID)

	switch command {
	case "start":
		b.handleStart(ctx, m)
	case "help":
		b.sendText(ctx, m.ChannelID, helpMessage)
	case "settings":
		b.sendMenu(ctx, m.ChannelID, b.settingsMenu())
	case "presets":
		b.sendMenu(ctx, m.ChannelID, presetsMenu())
	default:
		b.logger.InfoContext(ctx, "unknown command", "command", command)
	}
}

// handleStart initialises the user's personality and greets them
func (b *Bot) handleStart(ctx context.Context, m *discordgo.MessageCreate) {
	b.store.Get(m.Author.ID)
	b.sendText(ctx, m.ChannelID, welcomeMessage)
}

func (b *Bot) sendText(ctx context.Context, channelID, text string) {
	if _, err := b.messenger.Send(ctx, channelID, text); err != nil {
		b.logger.ErrorContext(ctx, "failed to send message",
			"channel_id", channelID,
			"error", err)
	}
}

func (b *Bot) sendMenu(ctx context.Context, channelID string, m menu) {
	_, err := b.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:    m.content,
		Components: m.components,
	}, discordgo.WithContext(ctx))
	if err != nil {
		b.logger.ErrorContext(ctx, "failed to send menu",
			"channel_id", channelID,
			"error", err)
	}
}
