package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestStripMention(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "plain mention", content: "<@bot-id> why study?", want: "why study?"},
		{name: "nickname mention", content: "<@!bot-id>   why study?  ", want: "why study?"},
		{name: "mention in the middle", content: "hey <@bot-id> explain", want: "hey  explain"},
		{name: "other user kept", content: "<@someone> hi", want: "<@someone> hi"},
		{name: "command after mention", content: "<@bot-id> !settings", want: "!settings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripMention(tt.content, testBotID); got != tt.want {
				t.Errorf("stripMention() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMentions(t *testing.T) {
	users := []*discordgo.User{{ID: "a"}, nil, {ID: testBotID}}

	if !mentions(users, testBotID) {
		t.Error("mentions() = false, want true")
	}
	if mentions(users, "zzz") {
		t.Error("mentions() = true for an absent user")
	}
	if mentions(users, "") {
		t.Error("mentions() must be false before the bot id is known")
	}
}

func TestInteractionUserID(t *testing.T) {
	tests := []struct {
		name string
		i    *discordgo.Interaction
		want string
	}{
		{name: "guild member", i: &discordgo.Interaction{Member: &discordgo.Member{User: &discordgo.User{ID: "m1"}}}, want: "m1"},
		{name: "direct message", i: &discordgo.Interaction{User: &discordgo.User{ID: "u1"}}, want: "u1"},
		{name: "neither", i: &discordgo.Interaction{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := interactionUserID(tt.i); got != tt.want {
				t.Errorf("interactionUserID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestButtonGrid(t *testing.T) {
	buttons := make([]discordgo.Button, 11)
	for i := range buttons {
		buttons[i] = button("b", "setting:x")
	}

	rows := buttonGrid(buttons, 3)
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}
	if n := len(rows[3].(discordgo.ActionsRow).Components); n != 2 {
		t.Errorf("last row has %d buttons, want 2", n)
	}

	if rows := buttonGrid(buttons, 9); len(rows[0].(discordgo.ActionsRow).Components) != maxRowButtons {
		t.Error("rows must be capped at five buttons")
	}
}
