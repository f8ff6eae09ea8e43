// Package personality holds the per-user trait vectors that shape how the
// model answers, the preset catalog, and the in-memory store keyed by user.
package personality

import (
	"math"
	"strconv"
	"strings"
)

// Trait names a single personality dimension
type Trait string

// Continuous traits take a level in [0.0, 1.0]; toggles are ON or OFF
const (
	Calmness   Trait = "calmness"
	Rage       Trait = "rage"
	Funny      Trait = "funny"
	Ironic     Trait = "ironic"
	Brevity    Trait = "brevity"
	CurseWords Trait = "curse_words"
	Age        Trait = "age"
	Rudeness   Trait = "rudeness"
	Slay       Trait = "slay"
	CapsLock   Trait = "caps_lock"
	Emoji      Trait = "emoji"
)

// Toggle is the value of a binary trait
type Toggle string

const (
	On  Toggle = "ON"
	Off Toggle = "OFF"
)

// Level bounds
const (
	MinLevel = 0.0
	MaxLevel = 1.0
)

// IsToggle reports whether the trait is binary
func (t Trait) IsToggle() bool {
	return t == CapsLock || t == Emoji
}

// DisplayName turns "curse_words" into "Curse Words"
func (t Trait) DisplayName() string {
	words := strings.Split(string(t), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Opposite flips a toggle
func (s Toggle) Opposite() Toggle {
	if s == On {
		return Off
	}
	return On
}

// Valid reports whether s is exactly ON or OFF
func (s Toggle) Valid() bool {
	return s == On || s == Off
}

// RoundLevel rounds to one decimal, the granularity of every adjustment
func RoundLevel(v float64) float64 {
	return math.Round(v*10) / 10
}

// FormatLevel renders a level the way it appears in prompts and menus
func FormatLevel(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// ParseLevel parses a level and checks it lies in [0.0, 1.0]
func ParseLevel(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) {
		return 0, NewValidationError("level", "not a number: "+s)
	}
	v = RoundLevel(v)
	if v < MinLevel || v > MaxLevel {
		return 0, NewValidationError("level", "out of range 0.0-1.0: "+s)
	}
	return v, nil
}
