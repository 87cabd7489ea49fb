package humanizer

import (
	"errors"
	"fmt"
	"strings"
)

// Mode is the caller's style hint. The pipeline accepts it but does not
// branch on it yet; callers use Premium to gate access.
type Mode string

const (
	ModeCasual       Mode = "casual"
	ModeProfessional Mode = "professional"
	ModeAcademic     Mode = "academic"
	ModeCreative     Mode = "creative"
	ModeFriendly     Mode = "friendly"
)

var ErrUnknownMode = errors.New("unknown humanization mode")

var allModes = []Mode{ModeCasual, ModeProfessional, ModeAcademic, ModeCreative, ModeFriendly}

func Modes() []Mode {
	out := make([]Mode, len(allModes))
	copy(out, allModes)
	return out
}

// ParseMode maps s onto a known mode. Empty input means casual.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ModeCasual, nil
	}
	for _, m := range allModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Premium reports whether the mode is reserved for paid accounts.
func (m Mode) Premium() bool {
	switch m {
	case ModeAcademic, ModeCreative, ModeFriendly:
		return true
	default:
		return false
	}
}

func (m Mode) String() string { return string(m) }
