package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/Dmetrikx/learnkeybot/internal/personality"
)

// menu is a message body with its button rows
type menu struct {
	content    string
	components []discordgo.MessageComponent
}

func button(label, customID string) discordgo.Button {
	return discordgo.Button{
		Label:    label,
		Style:    discordgo.SecondaryButton,
		CustomID: customID,
	}
}

func backButton(label, customID string) discordgo.Button {
	return discordgo.Button{
		Label:    label,
		Style:    discordgo.PrimaryButton,
		CustomID: customID,
	}
}

// buttonGrid lays buttons out in rows of perRow
func buttonGrid(buttons []discordgo.Button, perRow int) []discordgo.MessageComponent {
	if perRow <= 0 || perRow > maxRowButtons {
		perRow = maxRowButtons
	}

	var rows []discordgo.MessageComponent
	for start := 0; start < len(buttons); start += perRow {
		end := min(start+perRow, len(buttons))
		row := discordgo.ActionsRow{}
		for _, btn := range buttons[start:end] {
			row.Components = append(row.Components, btn)
		}
		rows = append(rows, row)
	}
	return rows
}

func row(buttons ...discordgo.Button) discordgo.MessageComponent {
	r := discordgo.ActionsRow{}
	for _, btn := range buttons {
		r.Components = append(r.Components, btn)
	}
	return r
}

// settingsMenu lists every trait of the active profile
func (b *Bot) settingsMenu() menu {
	traits := b.store.Profile().Traits
	buttons := make([]discordgo.Button, 0, len(traits))
	for _, t := range traits {
		buttons = append(buttons, button(t.DisplayName(), actionSetting+":"+string(t)))
	}
	return menu{content: settingsPrompt, components: buttonGrid(buttons, settingsPerRow)}
}

// traitMenu shows one trait with the controls to change it. label is
// "Current value" or "Updated value".
func traitMenu(t personality.Trait, v personality.Vector, label string) menu {
	var rows []discordgo.MessageComponent
	var value string

	if t.IsToggle() {
		state := v.Toggles[t]
		opposite := state.Opposite()
		value = string(state)
		rows = append(rows, row(button("Turn "+string(opposite), fmt.Sprintf("%s:%s:%s", actionToggle, t, opposite))))
	} else {
		level := v.Levels[t]
		value = personality.FormatLevel(level) + " (Range: 0.0-1.0)"

		var steps []discordgo.Button
		for _, adj := range personality.Adjustments(level) {
			steps = append(steps, button(adj.Label, adjustID(t, adj.Target)))
		}
		if len(steps) > 0 {
			rows = append(rows, row(steps...))
		}
		rows = append(rows, row(
			button("Min (0.0)", adjustID(t, personality.MinLevel)),
			button("Max (1.0)", adjustID(t, personality.MaxLevel)),
		))
	}

	rows = append(rows, row(backButton("◀️ Back to Settings", actionBackToSettings)))

	return menu{
		content:    fmt.Sprintf("**%s**\n%s: %s", t.DisplayName(), label, value),
		components: rows,
	}
}

func adjustID(t personality.Trait, level float64) string {
	return fmt.Sprintf("%s:%s:%s", actionAdjust, t, personality.FormatLevel(level))
}

// presetsMenu lists every preset except default, which gets its own reset row
func presetsMenu() menu {
	var buttons []discordgo.Button
	var reset discordgo.Button
	for _, p := range personality.Presets() {
		if p.ID == personality.DefaultPresetID {
			reset = backButton("🔄 Reset to Default", actionPreset+":"+p.ID)
			continue
		}
		buttons = append(buttons, button(p.Name, actionPreset+":"+p.ID))
	}

	components := buttonGrid(buttons, presetsPerRow)
	components = append(components, row(reset))
	return menu{content: presetsPrompt, components: components}
}

// presetAppliedMenu confirms a preset
func presetAppliedMenu(p personality.Preset) menu {
	return menu{
		content: fmt.Sprintf("**%s Applied!**\n\n%s\n\nYour personality settings have been updated. "+
			"Try sending me some content to see the new style!", p.Name, p.Description),
		components: []discordgo.MessageComponent{row(backButton("◀️ Back to Presets", actionBackToPresets))},
	}
}
