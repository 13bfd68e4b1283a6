package assessment

import "strings"

// ProtectionLevel labels how restricted the sharing of a finding is.
type ProtectionLevel string

const (
	ProtectionPublic          ProtectionLevel = "public"
	ProtectionSensitive       ProtectionLevel = "sensitive"
	ProtectionConfidential    ProtectionLevel = "confidential"
	ProtectionTribalSovereign ProtectionLevel = "tribal_sovereign"
)

func (p ProtectionLevel) IsValid() bool {
	switch p {
	case ProtectionPublic, ProtectionSensitive, ProtectionConfidential, ProtectionTribalSovereign:
		return true
	default:
		return false
	}
}

func (p ProtectionLevel) String() string {
	return string(p)
}

// ParseProtectionLevel normalizes a protection level string. The second
// return is false for values outside the known set.
func ParseProtectionLevel(s string) (ProtectionLevel, bool) {
	norm := ProtectionLevel(strings.TrimSpace(strings.ToLower(s)))
	return norm, norm.IsValid()
}

// Shareable reports whether findings at this level may cross the
// sovereign data-export boundary. Only public and sensitive may.
func (p ProtectionLevel) Shareable() bool {
	return p == ProtectionPublic || p == ProtectionSensitive
}

// AllProtectionLevels returns the valid levels ordered from least to
// most restricted.
func AllProtectionLevels() []ProtectionLevel {
	return []ProtectionLevel{ProtectionPublic, ProtectionSensitive, ProtectionConfidential, ProtectionTribalSovereign}
}
