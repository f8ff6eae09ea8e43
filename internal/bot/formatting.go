package bot

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// mentions reports whether userID is among the mentioned users
func mentions(users []*discordgo.User, userID string) bool {
	if userID == "" {
		return false
	}
	for _, u := range users {
		if u != nil && u.ID == userID {
			return true
		}
	}
	return false
}

// stripMention removes both mention forms of userID and trims the result
func stripMention(content, userID string) string {
	if userID != "" {
		content = strings.ReplaceAll(content, "<@"+userID+">", "")
		content = strings.ReplaceAll(content, "<@!"+userID+">", "")
	}
	return strings.TrimSpace(content)
}

// interactionUserID returns the presser, a guild member or a DM user
func interactionUserID(i *discordgo.Interaction) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
