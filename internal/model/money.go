package model

import "github.com/shopspring/decimal"

// Currency is the single currency every amount in the system is kept in.
const Currency = "GBP"

// Money is an amount in Currency with two decimal places.
type Money = decimal.Decimal

// NewMoney returns a whole-unit amount.
func NewMoney(units int64) Money { return decimal.NewFromInt(units) }
