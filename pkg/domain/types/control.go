package types

import "github.com/m-mizutani/goerr/v2"

// ControlType represents the kind of safeguard a control provides
type ControlType string

const (
	ControlTypePreventive ControlType = "Preventive"
	ControlTypeDetective  ControlType = "Detective"
	ControlTypeCorrective ControlType = "Corrective"
)

// IsValid checks if the control type is valid
func (t ControlType) IsValid() bool {
	switch t {
	case ControlTypePreventive, ControlTypeDetective, ControlTypeCorrective:
		return true
	default:
		return false
	}
}

// String returns the string representation of the control type
func (t ControlType) String() string {
	return string(t)
}

// ParseControlType parses a string into a ControlType
func ParseControlType(s string) (ControlType, error) {
	ct := ControlType(s)
	if !ct.IsValid() {
		return "", goerr.New("invalid control type", goerr.V("type", s),
			goerr.V("valid", []ControlType{ControlTypePreventive, ControlTypeDetective, ControlTypeCorrective}))
	}
	return ct, nil
}

// ControlEffectiveness represents how effective an existing control is.
// Only effectiveness affects residual score reduction, never the inherent
// score.
type ControlEffectiveness string

const (
	ControlEffectivenessWeak     ControlEffectiveness = "Weak"
	ControlEffectivenessModerate ControlEffectiveness = "Moderate"
	ControlEffectivenessStrong   ControlEffectiveness = "Strong"
)

// IsValid checks if the control effectiveness is valid
func (e ControlEffectiveness) IsValid() bool {
	switch e {
	case ControlEffectivenessWeak, ControlEffectivenessModerate, ControlEffectivenessStrong:
		return true
	default:
		return false
	}
}

// String returns the string representation of the control effectiveness
func (e ControlEffectiveness) String() string {
	return string(e)
}

// ParseControlEffectiveness parses a string into a ControlEffectiveness
func ParseControlEffectiveness(s string) (ControlEffectiveness, error) {
	ce := ControlEffectiveness(s)
	if !ce.IsValid() {
		return "", goerr.New("invalid control effectiveness", goerr.V("effectiveness", s),
			goerr.V("valid", []ControlEffectiveness{ControlEffectivenessWeak, ControlEffectivenessModerate, ControlEffectivenessStrong}))
	}
	return ce, nil
}
