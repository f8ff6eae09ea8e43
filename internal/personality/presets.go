package personality

// DefaultPresetID resets a user to the factory defaults
const DefaultPresetID = "default"

// Preset is a named, read-only trait vector applied in one replacement
type Preset struct {
	ID          string
	Name        string
	Description string
	Vector      Vector
}

var presetCatalog = []Preset{
	{
		ID: "friendly", Name: "🤗 Friendly",
		Description: "Warm, helpful, and encouraging",
		Vector:      Vector{Levels: levels(0.8, 0.0, 0.3, 0.1, 0.4, 0.0, 0.4, 0.0, 0.2), Toggles: toggles(Off, On)},
	},
	{
		ID: "aggressive", Name: "😤 Rage Mode",
		Description: "Intense, forceful, and brutally direct",
		Vector:      Vector{Levels: levels(0.0, 1.0, 0.1, 0.2, 0.9, 0.9, 0.3, 0.8, 0.9), Toggles: toggles(On, Off)},
	},
	{
		ID: "sarcastic", Name: "😏 Sarcastic Genius",
		Description: "Witty, ironic, and devastatingly clever",
		Vector:      Vector{Levels: levels(0.7, 0.2, 0.9, 1.0, 0.6, 0.4, 0.6, 0.6, 0.8), Toggles: toggles(Off, On)},
	},
	{
		ID: "wise", Name: "🧙 Ancient Sage",
		Description: "Profound wisdom from the depths of experience",
		Vector:      Vector{Levels: levels(1.0, 0.0, 0.0, 0.0, 0.1, 0.0, 1.0, 0.0, 0.0), Toggles: toggles(Off, Off)},
	},
	{
		ID: "chaotic", Name: "🌪️ Chaotic Energy",
		Description: "Unpredictable, wild, and absolutely unhinged",
		Vector:      Vector{Levels: levels(0.0, 0.7, 1.0, 0.8, 0.3, 0.7, 0.1, 0.9, 1.0), Toggles: toggles(On, On)},
	},
	{
		ID: "millennial", Name: "💅 Millennial Vibe",
		Description: "That's not giving what it's supposed to give, bestie",
		Vector:      Vector{Levels: levels(0.4, 0.3, 0.8, 0.7, 0.7, 0.2, 0.3, 0.4, 1.0), Toggles: toggles(Off, On)},
	},
	{
		ID: "gen_z", Name: "💀 Gen Z Energy",
		Description: "No cap, this is bussin fr fr",
		Vector:      Vector{Levels: levels(0.2, 0.1, 1.0, 0.9, 0.9, 0.3, 0.0, 0.3, 1.0), Toggles: toggles(Off, On)},
	},
	{
		ID: "corporate", Name: "💼 Corporate Speak",
		Description: "Synergizing actionable insights with scalable solutions",
		Vector:      Vector{Levels: levels(0.8, 0.0, 0.0, 0.1, 0.2, 0.0, 0.7, 0.0, 0.0), Toggles: toggles(Off, Off)},
	},
	{
		ID: "motivational", Name: "💪 Motivational Coach",
		Description: "YOU CAN DO THIS! BELIEVE IN YOURSELF!",
		Vector:      Vector{Levels: levels(0.1, 0.0, 0.4, 0.0, 0.6, 0.0, 0.4, 0.0, 0.9), Toggles: toggles(On, On)},
	},
	{
		ID: "nihilistic", Name: "🖤 Nihilistic Void",
		Description: "Nothing matters, but here's why you should care anyway",
		Vector:      Vector{Levels: levels(0.9, 0.0, 0.3, 0.8, 0.7, 0.2, 0.8, 0.6, 0.0), Toggles: toggles(Off, Off)},
	},
	{
		ID: "villain", Name: "😈 Evil Mastermind",
		Description: "Muahahaha! Let me explain my diabolical plan...",
		Vector:      Vector{Levels: levels(0.8, 0.4, 0.6, 0.7, 0.3, 0.3, 0.6, 0.8, 0.9), Toggles: toggles(Off, On)},
	},
	{
		ID: "child", Name: "🧒 Curious Kid",
		Description: "OMG this is like, SO cool! Did you know that...",
		Vector:      Vector{Levels: levels(0.2, 0.0, 0.9, 0.0, 0.3, 0.0, 0.0, 0.0, 0.3), Toggles: toggles(Off, On)},
	},
	{
		ID: DefaultPresetID, Name: "🔄 Default",
		Description: "Balanced neutral settings",
		Vector:      HostedProfile.Defaults,
	},
}

// Presets returns the catalog in menu order, default last
func Presets() []Preset {
	out := make([]Preset, len(presetCatalog))
	for i, p := range presetCatalog {
		p.Vector = p.Vector.Clone()
		out[i] = p
	}
	return out
}

// FindPreset looks up a preset by id
func FindPreset(id string) (Preset, bool) {
	for _, p := range presetCatalog {
		if p.ID == id {
			p.Vector = p.Vector.Clone()
			return p, true
		}
	}
	return Preset{}, false
}
