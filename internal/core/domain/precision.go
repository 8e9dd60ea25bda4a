package domain

import "github.com/shopspring/decimal"

// MaxDecimals bounds every configurable precision.
const MaxDecimals = 8

// Precision is the system-wide decimal configuration read at validation time.
type Precision struct {
	AmountDecimals   int32 `json:"amountDecimals"`
	QuantityDecimals int32 `json:"quantityDecimals"`
	RateDecimals     int32 `json:"rateDecimals"`
}

// RoundAmount rounds an amount to AmountDecimals.
func (p Precision) RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(p.AmountDecimals)
}

// RoundRate rounds an exchange rate to RateDecimals.
func (p Precision) RoundRate(d decimal.Decimal) decimal.Decimal {
	return d.Round(p.RateDecimals)
}

// Epsilon is half of the smallest representable amount: 10^-AmountDecimals / 2.
func (p Precision) Epsilon() decimal.Decimal {
	return decimal.New(5, -(p.AmountDecimals + 1))
}
