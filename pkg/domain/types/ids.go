package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

var idPattern = regexp.MustCompile(`^[a-z0-9]+([-_][a-z0-9]+)*$`)

// RiskID represents a unique identifier for a risk
type RiskID string

// Validate checks if the RiskID is valid
func (r RiskID) Validate() error {
	if r == "" {
		return goerr.New("risk ID cannot be empty")
	}
	if !idPattern.MatchString(string(r)) {
		return goerr.New("risk ID must be lowercase alphanumeric with hyphens or underscores", goerr.V("id", r))
	}
	return nil
}

// String returns the string representation of RiskID
func (r RiskID) String() string {
	return string(r)
}

// ControlID represents a unique identifier for an existing control
type ControlID string

// Validate checks if the ControlID is valid
func (c ControlID) Validate() error {
	if c == "" {
		return goerr.New("control ID cannot be empty")
	}
	return nil
}

// String returns the string representation of ControlID
func (c ControlID) String() string {
	return string(c)
}

// ActionID represents a unique identifier for a mitigation action
type ActionID string

// Validate checks if the ActionID is valid
func (a ActionID) Validate() error {
	if a == "" {
		return goerr.New("action ID cannot be empty")
	}
	return nil
}

// String returns the string representation of ActionID
func (a ActionID) String() string {
	return string(a)
}
