package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for catalogue validation
var (
	ErrCatalogueNotFound = goerr.New("catalogue file not found")
	ErrInvalidCatalogue  = goerr.New("invalid catalogue")
	ErrDuplicateRiskID   = goerr.New("duplicate risk ID")
	ErrUnknownRiskRef    = goerr.New("dependency references unknown risk")
)

// Context keys for error values
const (
	CataloguePathKey = "catalogue_path"
	RiskIDKey        = "risk_id"
	SourceIDKey      = "source_id"
	TargetIDKey      = "target_id"
)
