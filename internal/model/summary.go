package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryTotal is the summed amount for one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
	Count    int
}

// Summary holds category totals in first-appearance order.
type Summary []CategoryTotal

// Map returns the totals keyed by category.
func (s Summary) Map() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(s))
	for _, ct := range s {
		m[ct.Category] = ct.Total
	}
	return m
}

// Total returns the total for category, or zero if it is absent.
func (s Summary) Total(category string) decimal.Decimal {
	for _, ct := range s {
		if ct.Category == category {
			return ct.Total
		}
	}
	return decimal.Zero
}

// GrandTotal sums every category.
func (s Summary) GrandTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, ct := range s {
		sum = sum.Add(ct.Total)
	}
	return sum
}

// DailyTotal holds spending for a single calendar day.
type DailyTotal struct {
	Date  time.Time
	Total decimal.Decimal
	Count int
}
