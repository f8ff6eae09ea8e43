package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/Dmetrikx/learnkeybot/internal/ai"
	"github.com/Dmetrikx/learnkeybot/internal/config"
	"github.com/Dmetrikx/learnkeybot/internal/pdf"
	"github.com/Dmetrikx/learnkeybot/internal/stream"
)

// handleText analyses a plain text message
func (b *Bot) handleText(ctx context.Context, m *discordgo.MessageCreate, text string) {
	placeholder, err := b.messenger.Send(ctx, m.ChannelID, processingMessage)
	if err != nil {
		b.logger.ErrorContext(ctx, "failed to send placeholder",
			"channel_id", m.ChannelID,
			"error", err)
		return
	}

	b.analyze(ctx, m.Author.ID, placeholder, b.composer.TextContent(b.now(), text))
}

// handleDocument downloads a PDF attachment and analyses its text together
// with the optional caption.
func (b *Bot) handleDocument(ctx context.Context, m *discordgo.MessageCreate, att *discordgo.MessageAttachment, caption string) {
	b.logger.InfoContext(ctx, "received document",
		"user_id", m.Author.ID,
		"filename", att.Filename,
		"content_type", att.ContentType,
		"size_bytes", att.Size)

	if !pdf.IsPDF(att.ContentType, att.Filename) {
		b.sendText(ctx, m.ChannelID, notPDFMessage)
		return
	}
	if att.Size > pdf.MaxDocumentSize {
		b.sendText(ctx, m.ChannelID, pdfTooLargeMessage)
		return
	}

	placeholder, err := b.messenger.Send(ctx, m.ChannelID, processingPDFMessage)
	if err != nil {
		b.logger.ErrorContext(ctx, "failed to send placeholder",
			"channel_id", m.ChannelID,
			"error", err)
		return
	}

	data, err := b.downloadAttachment(ctx, att.URL)
	if err != nil {
		b.logger.ErrorContext(ctx, "failed to download document",
			"filename", att.Filename,
			"error", err)
		b.editText(ctx, placeholder, pdfDownloadFailed)
		return
	}

	text := b.extractor.ExtractText(data)
	if text == "" {
		b.logger.WarnContext(ctx, "no text extracted from document",
			"user_id", m.Author.ID,
			"filename", att.Filename)
		b.editText(ctx, placeholder, pdfNoTextMessage)
		return
	}

	b.editText(ctx, placeholder, pdfProcessedMessage)
	b.analyze(ctx, m.Author.ID, placeholder, ai.DocumentContent(caption, text))
}

// analyze runs one generation for userID and delivers it into placeholder
func (b *Bot) analyze(ctx context.Context, userID string, placeholder stream.MessageRef, content string) {
	// Delivery must still happen after a generation deadline, so it gets a
	// context that is not cancelled with the generation.
	deliverCtx := context.WithoutCancel(ctx)

	timeout := b.config.GenerationTimeout
	if timeout <= 0 {
		timeout = config.DefaultGenerationTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := b.sessions.Acquire(ctx, 1); err != nil {
		b.logger.WarnContext(ctx, "no free generation slot",
			"user_id", userID,
			"error", err)
		b.editText(deliverCtx, placeholder, busyMessage)
		return
	}
	defer b.sessions.Release(1)

	vector := b.store.Get(userID)
	req, err := b.composer.Compose(vector, content)
	if err != nil {
		b.logger.ErrorContext(ctx, "failed to compose request",
			"user_id", userID,
			"error", err)
		b.editText(deliverCtx, placeholder, composeErrorMessage)
		return
	}

	source, err := b.generator.Generate(ctx, req)
	if err != nil {
		b.logger.ErrorContext(ctx, "generation request failed",
			"user_id", userID,
			"error", err)
		b.editText(deliverCtx, placeholder, backendErrorMessage)
		return
	}
	defer source.Close()

	session := b.throttler.NewSession(placeholder)
	result := b.throttler.Consume(ctx, session, source, func(ctx context.Context, preview string) error {
		return b.messenger.Edit(ctx, placeholder, stream.PreviewHeader+preview)
	})

	if result.Err != nil {
		b.logger.WarnContext(ctx, "generation stream failed, delivering partial answer",
			"session_id", result.SessionID,
			"user_id", userID,
			"response_length", len(result.Text),
			"error", result.Err)
	}

	if strings.TrimSpace(result.Text) == "" {
		message := emptyResponseMessage
		if result.Err != nil {
			message = streamFailedMessage
		}
		b.editText(deliverCtx, placeholder, message)
		return
	}

	chunks := stream.Finalize(result.Text, vector, b.config.MaxMessageLength)
	if err := stream.Deliver(deliverCtx, b.messenger, placeholder, chunks, b.logger); err != nil {
		var deliveryErr *stream.DeliveryError
		if errors.As(err, &deliveryErr) {
			b.logger.ErrorContext(ctx, "final answer partially delivered",
				"session_id", result.SessionID,
				"failed_chunks", len(deliveryErr.Failures),
				"chunk_count", deliveryErr.Total)
		}
		return
	}

	b.logger.InfoContext(ctx, "answer delivered",
		"session_id", result.SessionID,
		"user_id", userID,
		"completion", result.Completion.String(),
		"chunk_count", len(chunks),
		"preview_pushes", result.Pushes)
}

func (b *Bot) editText(ctx context.Context, ref stream.MessageRef, text string) {
	if err := b.messenger.Edit(ctx, ref, text); err != nil && !stream.IsNotModified(err) {
		b.logger.ErrorContext(ctx, "failed to edit message",
			"channel_id", ref.ChannelID,
			"message_id", ref.MessageID,
			"error", err)
	}
}

// downloadAttachment fetches an attachment, refusing bodies over the size limit
func (b *Bot) downloadAttachment(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download attachment: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, pdf.MaxDocumentSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > pdf.MaxDocumentSize {
		return nil, fmt.Errorf("attachment exceeds %d bytes", pdf.MaxDocumentSize)
	}
	return data, nil
}
