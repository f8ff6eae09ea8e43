package personality

// Profile is the trait set and factory defaults of one backend variant
type Profile struct {
	Name     string
	Traits   []Trait
	Defaults Vector
}

// HostedProfile is used with the hosted router API. It carries the extra slay trait.
var HostedProfile = Profile{
	Name:   "hosted",
	Traits: []Trait{Calmness, Rage, Funny, Ironic, Brevity, CurseWords, Age, Rudeness, Slay, CapsLock, Emoji},
	Defaults: Vector{
		Levels:  levels(0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5),
		Toggles: toggles(Off, On),
	},
}

// LocalProfile is used with the locally hosted model server
var LocalProfile = Profile{
	Name:   "local",
	Traits: []Trait{Calmness, Rage, Funny, Ironic, Brevity, CurseWords, Age, Rudeness, CapsLock, Emoji},
	Defaults: Vector{
		Levels:  without(levels(0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5), Slay),
		Toggles: toggles(Off, Off),
	},
}

// ProfileFor returns the profile for a backend name, defaulting to hosted
func ProfileFor(backend string) Profile {
	if backend == LocalProfile.Name {
		return LocalProfile
	}
	return HostedProfile
}

// Has reports whether t belongs to the profile
func (p Profile) Has(t Trait) bool {
	for _, pt := range p.Traits {
		if pt == t {
			return true
		}
	}
	return false
}

// Restrict returns a copy of v holding only the profile's traits
func (p Profile) Restrict(v Vector) Vector {
	out := NewVector()
	for _, t := range p.Traits {
		if t.IsToggle() {
			if s, ok := v.Toggles[t]; ok {
				out.Toggles[t] = s
			}
			continue
		}
		if l, ok := v.Levels[t]; ok {
			out.Levels[t] = l
		}
	}
	return out
}

// Preset looks up a preset by id, restricted to this profile. The default
// preset always resolves to the profile's own factory defaults.
func (p Profile) Preset(id string) (Preset, bool) {
	preset, ok := FindPreset(id)
	if !ok {
		return Preset{}, false
	}
	if id == DefaultPresetID {
		preset.Vector = p.Defaults.Clone()
		return preset, true
	}
	preset.Vector = p.Restrict(preset.Vector)
	return preset, true
}

func levels(calmness, rage, funny, ironic, brevity, curseWords, age, rudeness, slay float64) map[Trait]float64 {
	return map[Trait]float64{
		Calmness:   calmness,
		Rage:       rage,
		Funny:      funny,
		Ironic:     ironic,
		Brevity:    brevity,
		CurseWords: curseWords,
		Age:        age,
		Rudeness:   rudeness,
		Slay:       slay,
	}
}

func toggles(capsLock, emoji Toggle) map[Trait]Toggle {
	return map[Trait]Toggle{
		CapsLock: capsLock,
		Emoji:    emoji,
	}
}

func without(m map[Trait]float64, t Trait) map[Trait]float64 {
	delete(m, t)
	return m
}
