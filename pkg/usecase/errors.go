package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for use case validation
var (
	ErrInvalidRisk     = goerr.New("invalid risk")
	ErrInvalidEdge     = goerr.New("invalid interdependency")
	ErrVersionConflict = goerr.New("risk version conflict")
)
