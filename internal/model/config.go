package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// AggregationConfig drives note numbering and the balance check.
type AggregationConfig struct {
	StartNoteNumber              int
	IncludeContingentLiabilities bool
	SkipEmptyNotes               bool
	ImbalanceTolerance           decimal.Decimal
}

// DefaultAggregationConfig returns the stock settings.
func DefaultAggregationConfig() AggregationConfig {
	return AggregationConfig{
		StartNoteNumber:              1,
		IncludeContingentLiabilities: true,
		SkipEmptyNotes:               true,
		ImbalanceTolerance:           decimal.NewFromFloat(0.01),
	}
}

// Validate checks the configuration bounds.
func (c AggregationConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.StartNoteNumber, validation.Required, validation.Min(1)),
		validation.Field(&c.ImbalanceTolerance, validation.By(nonNegative)),
	)
}

func nonNegative(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok {
		return validation.NewError("validation_decimal", "must be a decimal")
	}
	if d.IsNegative() {
		return validation.NewError("validation_non_negative", "must not be negative")
	}
	return nil
}
