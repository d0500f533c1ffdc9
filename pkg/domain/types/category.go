package types

import "github.com/m-mizutani/goerr/v2"

// Category represents a risk category
type Category string

const (
	CategoryStrategic   Category = "Strategic"
	CategoryMarket      Category = "Market"
	CategoryOperational Category = "Operational"
	CategoryRegulatory  Category = "Regulatory & Compliance"
	CategoryTechnology  Category = "Technology & Data"
	CategoryGovernance  Category = "Governance & Decision-Making"
	CategoryForecasting Category = "Forecasting"
	CategoryProcurement Category = "Procurement & Hedging"
)

// AllCategories returns all valid risk categories
func AllCategories() []Category {
	return []Category{
		CategoryStrategic,
		CategoryMarket,
		CategoryOperational,
		CategoryRegulatory,
		CategoryTechnology,
		CategoryGovernance,
		CategoryForecasting,
		CategoryProcurement,
	}
}

// IsValid checks if the category is valid
func (c Category) IsValid() bool {
	switch c {
	case CategoryStrategic,
		CategoryMarket,
		CategoryOperational,
		CategoryRegulatory,
		CategoryTechnology,
		CategoryGovernance,
		CategoryForecasting,
		CategoryProcurement:
		return true
	default:
		return false
	}
}

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}

// ParseCategory parses a string into a Category
func ParseCategory(s string) (Category, error) {
	category := Category(s)
	if !category.IsValid() {
		return "", goerr.New("invalid risk category",
			goerr.V("category", s), goerr.V("valid", AllCategories()))
	}
	return category, nil
}
