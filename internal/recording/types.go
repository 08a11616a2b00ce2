package recording

import "fmt"

// Type identifies one recording format generation. Classification always
// produces exactly one of the four values below or fails; there is no
// "unknown" success value.
type Type string

const (
	// NewStyle recordings carry the versioned info.player.json marker.
	NewStyle Type = "new_style"
	// OldStyle recordings carry info.csv with a Data Format Version key,
	// written back by the legacy desktop player on first open.
	OldStyle Type = "old_style"
	// Invisible recordings come from the Invisible companion app and carry
	// the device-style info.json marker.
	Invisible Type = "invisible"
	// Mobile recordings come from the Pupil Mobile app: info.csv names it as
	// capture software and the player has not stamped a format version yet.
	Mobile Type = "mobile"
)

// Types lists every recognized format in classification priority order.
func Types() []Type {
	return []Type{NewStyle, OldStyle, Invisible, Mobile}
}

// Label returns the human-facing name used in CLI output.
func (t Type) Label() string {
	switch t {
	case NewStyle:
		return "New Style"
	case OldStyle:
		return "Old Style"
	case Invisible:
		return "Invisible"
	case Mobile:
		return "Mobile"
	default:
		return string(t)
	}
}

// ParseType converts a stored string back into a Type.
func ParseType(value string) (Type, error) {
	for _, t := range Types() {
		if string(t) == value {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown recording type %q", value)
}
