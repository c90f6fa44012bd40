package board

// PinStates caches the last commanded digital level of each pin.
// It is not safe for concurrent use; Controller guards it.
type PinStates struct {
	levels map[Pin]Level
}

// Record saves the level of a pin.
func (s *PinStates) Record(pin Pin, level Level) {
	if s.levels == nil {
		s.levels = make(map[Pin]Level)
	}
	s.levels[pin] = level
}

// State returns the cached level, Low if never recorded.
func (s *PinStates) State(pin Pin) Level {
	return s.levels[pin]
}

// IsHigh reports whether the pin was last set high.
func (s *PinStates) IsHigh(pin Pin) bool {
	return s.State(pin) == High
}

// IsLow reports whether the pin was last set low or never set.
func (s *PinStates) IsLow(pin Pin) bool {
	return s.State(pin) == Low
}

// Snapshot copies recorded levels.
func (s *PinStates) Snapshot() map[Pin]Level {
	m := make(map[Pin]Level, len(s.levels))
	for pin, level := range s.levels {
		m[pin] = level
	}
	return m
}

// Reset forgets all levels.
func (s *PinStates) Reset() {
	s.levels = nil
}
