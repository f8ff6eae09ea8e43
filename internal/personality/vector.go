package personality

// Vector is one user's full set of trait values
type Vector struct {
	Levels  map[Trait]float64
	Toggles map[Trait]Toggle
}

// NewVector returns an empty vector ready for writes
func NewVector() Vector {
	return Vector{
		Levels:  make(map[Trait]float64),
		Toggles: make(map[Trait]Toggle),
	}
}

// Clone returns a deep copy so callers can mutate without touching shared state
func (v Vector) Clone() Vector {
	out := NewVector()
	for k, val := range v.Levels {
		out.Levels[k] = val
	}
	for k, val := range v.Toggles {
		out.Toggles[k] = val
	}
	return out
}

// Has reports whether the vector carries a value for t
func (v Vector) Has(t Trait) bool {
	if t.IsToggle() {
		_, ok := v.Toggles[t]
		return ok
	}
	_, ok := v.Levels[t]
	return ok
}

// Values renders every trait keyed by its name
func (v Vector) Values() map[string]string {
	out := make(map[string]string, len(v.Levels)+len(v.Toggles))
	for k, l := range v.Levels {
		out[string(k)] = FormatLevel(l)
	}
	for k, s := range v.Toggles {
		out[string(k)] = string(s)
	}
	return out
}

// CapsLock reports whether answers must be upper-cased
func (v Vector) CapsLock() bool {
	return v.Toggles[CapsLock] == On
}

// Validate checks every level lies in [0.0, 1.0] and every toggle is ON or OFF
func (v Vector) Validate() error {
	for t, l := range v.Levels {
		if t.IsToggle() {
			return NewValidationError(string(t), "toggle stored as a level")
		}
		if l < MinLevel || l > MaxLevel {
			return NewValidationError(string(t), "level out of range 0.0-1.0: "+FormatLevel(l))
		}
	}
	for t, s := range v.Toggles {
		if !t.IsToggle() {
			return NewValidationError(string(t), "level stored as a toggle")
		}
		if !s.Valid() {
			return NewValidationError(string(t), "toggle must be ON or OFF, got "+string(s))
		}
	}
	return nil
}
