package bot

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/Dmetrikx/learnkeybot/internal/personality"
)

var errUnknownCallback = errors.New("unknown callback")

// callback is a parsed button custom id such as "adjust:rage:0.7"
type callback struct {
	action string
	trait  personality.Trait
	value  string
}

func parseCallback(customID string) (callback, error) {
	parts := strings.SplitN(customID, ":", 3)
	cb := callback{action: parts[0]}

	switch cb.action {
	case actionBackToSettings, actionBackToPresets:
		if len(parts) != 1 {
			return callback{}, errUnknownCallback
		}
	case actionSetting:
		if len(parts) != 2 || parts[1] == "" {
			return callback{}, errUnknownCallback
		}
		cb.trait = personality.Trait(parts[1])
	case actionPreset:
		if len(parts) != 2 || parts[1] == "" {
			return callback{}, errUnknownCallback
		}
		cb.value = parts[1]
	case actionAdjust, actionToggle:
		if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
			return callback{}, errUnknownCallback
		}
		cb.trait = personality.Trait(parts[1])
		cb.value = parts[2]
	default:
		return callback{}, errUnknownCallback
	}
	return cb, nil
}

func (b *Bot) handleInteraction(ctx context.Context, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	userID := interactionUserID(i.Interaction)
	customID := i.MessageComponentData().CustomID

	b.logger.InfoContext(ctx, "received button press",
		"user_id", userID,
		"custom_id", customID)

	cb, err := parseCallback(customID)
	if err != nil {
		b.logger.WarnContext(ctx, "unrecognised button", "custom_id", customID)
		b.respond(ctx, i.Interaction, menu{content: invalidSelectionMessage})
		return
	}

	b.respond(ctx, i.Interaction, b.dispatch(ctx, userID, cb))
}

// dispatch applies a callback and returns the menu that replaces the pressed one
func (b *Bot) dispatch(ctx context.Context, userID string, cb callback) menu {
	switch cb.action {
	case actionBackToSettings:
		return b.settingsMenu()

	case actionBackToPresets:
		return presetsMenu()

	case actionSetting:
		if !b.store.Profile().Has(cb.trait) {
			return b.invalidSelection(ctx, userID, cb, nil)
		}
		return traitMenu(cb.trait, b.store.Get(userID), "Current value")

	case actionAdjust:
		level, err := personality.ParseLevel(cb.value)
		if err != nil {
			return b.invalidSelection(ctx, userID, cb, err)
		}
		v, err := b.store.SetLevel(userID, cb.trait, level)
		if err != nil {
			return b.invalidSelection(ctx, userID, cb, err)
		}
		b.logger.InfoContext(ctx, "trait adjusted",
			"user_id", userID,
			"trait", string(cb.trait),
			"value", personality.FormatLevel(v.Levels[cb.trait]))
		return traitMenu(cb.trait, v, "Updated value")

	case actionToggle:
		v, err := b.store.SetToggle(userID, cb.trait, personality.Toggle(cb.value))
		if err != nil {
			return b.invalidSelection(ctx, userID, cb, err)
		}
		b.logger.InfoContext(ctx, "trait toggled",
			"user_id", userID,
			"trait", string(cb.trait),
			"value", cb.value)
		return traitMenu(cb.trait, v, "Updated value")

	case actionPreset:
		preset, err := b.store.ApplyPreset(userID, cb.value)
		if err != nil {
			b.logger.WarnContext(ctx, "invalid preset", "user_id", userID, "preset", cb.value)
			return menu{content: invalidPresetMessage}
		}
		b.logger.InfoContext(ctx, "preset applied",
			"user_id", userID,
			"preset", preset.ID)
		return presetAppliedMenu(preset)
	}

	return menu{content: invalidSelectionMessage}
}

func (b *Bot) invalidSelection(ctx context.Context, userID string, cb callback, err error) menu {
	b.logger.WarnContext(ctx, "rejected settings change",
		"user_id", userID,
		"action", cb.action,
		"trait", string(cb.trait),
		"value", cb.value,
		"error", err)

	m := b.settingsMenu()
	m.content = invalidSelectionMessage + "\n\n" + settingsPrompt
	return m
}

// respond replaces the message that carried the pressed button
func (b *Bot) respond(ctx context.Context, i *discordgo.Interaction, m menu) {
	components := m.components
	if components == nil {
		components = []discordgo.MessageComponent{}
	}

	err := b.session.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    m.content,
			Components: components,
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		b.logger.ErrorContext(ctx, "failed to respond to interaction",
			"interaction_id", i.ID,
			"error", err)
	}
}
