package personality

import (
	"github.com/patrickmn/go-cache"
)

// Store keeps one Vector per user for the lifetime of the process.
//
// Every mutation reads a copy, modifies it and writes it back, so two
// concurrent writes for the same user resolve as last-write-wins.
type Store struct {
	cache   *cache.Cache
	profile Profile
}

// NewStore creates an empty store whose vectors start from profile's defaults
func NewStore(profile Profile) *Store {
	return &Store{
		cache:   cache.New(cache.NoExpiration, 0),
		profile: profile,
	}
}

// Profile returns the profile the store was created with
func (s *Store) Profile() Profile {
	return s.profile
}

// Get returns a copy of the user's vector, creating it from defaults on first access
func (s *Store) Get(userID string) Vector {
	if x, found := s.cache.Get(userID); found {
		return x.(Vector).Clone()
	}
	// Add fails if a concurrent caller initialised the entry first; either way
	// the entry exists afterwards.
	_ = s.cache.Add(userID, s.profile.Defaults.Clone(), cache.NoExpiration)
	x, _ := s.cache.Get(userID)
	return x.(Vector).Clone()
}

// SetLevel sets a continuous trait and returns the updated vector
func (s *Store) SetLevel(userID string, t Trait, level float64) (Vector, error) {
	if !s.profile.Has(t) || t.IsToggle() {
		return Vector{}, NewValidationError(string(t), "not an adjustable trait")
	}
	level = RoundLevel(level)
	if level < MinLevel || level > MaxLevel {
		return Vector{}, NewValidationError(string(t), "level out of range 0.0-1.0: "+FormatLevel(level))
	}

	v := s.Get(userID)
	v.Levels[t] = level
	s.put(userID, v)
	return v.Clone(), nil
}

// SetToggle sets a binary trait and returns the updated vector
func (s *Store) SetToggle(userID string, t Trait, state Toggle) (Vector, error) {
	if !s.profile.Has(t) || !t.IsToggle() {
		return Vector{}, NewValidationError(string(t), "not a toggle")
	}
	if !state.Valid() {
		return Vector{}, NewValidationError(string(t), "toggle must be ON or OFF, got "+string(state))
	}

	v := s.Get(userID)
	v.Toggles[t] = state
	s.put(userID, v)
	return v.Clone(), nil
}

// ApplyPreset replaces the user's entire vector with the preset's
func (s *Store) ApplyPreset(userID, presetID string) (Preset, error) {
	preset, ok := s.profile.Preset(presetID)
	if !ok {
		return Preset{}, NewValidationError("preset", "unknown preset "+presetID)
	}
	if err := preset.Vector.Validate(); err != nil {
		return Preset{}, err
	}
	s.put(userID, preset.Vector.Clone())
	return preset, nil
}

func (s *Store) put(userID string, v Vector) {
	s.cache.Set(userID, v, cache.NoExpiration)
}
