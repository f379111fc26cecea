// Package model defines the data types shared across flowcast.
package model

import (
	"fmt"
	"time"
)

// Category classifies a cash flow transaction.
type Category string

// All recognized transaction categories. Revenue and AR Collections are
// inflows; everything else is an outflow.
const (
	CategoryRevenue       Category = "Revenue"
	CategoryARCollections Category = "AR Collections"
	CategoryPayroll       Category = "Payroll"
	CategoryCOGS          Category = "COGS"
	CategoryMarketing     Category = "Marketing"
	CategorySoftware      Category = "Software"
	CategoryRent          Category = "Rent"
	CategoryUtilities     Category = "Utilities"
	CategoryProfServices  Category = "Professional Services"
	CategorySupplies      Category = "Supplies"
	CategoryTravel        Category = "Travel"
)

// Categories lists every recognized category in display order.
var Categories = []Category{
	CategoryRevenue,
	CategoryARCollections,
	CategoryPayroll,
	CategoryCOGS,
	CategoryMarketing,
	CategorySoftware,
	CategoryRent,
	CategoryUtilities,
	CategoryProfServices,
	CategorySupplies,
	CategoryTravel,
}

// OutflowCategories lists the expense categories in display order.
var OutflowCategories = []Category{
	CategoryPayroll,
	CategoryCOGS,
	CategoryMarketing,
	CategorySoftware,
	CategoryRent,
	CategoryUtilities,
	CategoryProfServices,
	CategorySupplies,
	CategoryTravel,
}

// ParseCategory maps a string to a known Category.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// IsInflow reports whether the category represents cash coming in.
func (c Category) IsInflow() bool {
	return c == CategoryRevenue || c == CategoryARCollections
}

// IsOutflow reports whether the category represents cash going out.
func (c Category) IsOutflow() bool {
	_, known := ParseCategory(string(c))
	return known && !c.IsInflow()
}

// Transaction is one historical cash flow record. Transactions are owned
// by the caller and read-only once loaded.
type Transaction struct {
	Date         time.Time
	Category     Category
	Amount       float64 // always positive; direction comes from the category
	PaymentTerms string  // informational only
}

// MalformedTransactionError describes a transaction record that failed
// validation, identifying the record and the offending field.
type MalformedTransactionError struct {
	Record int // 1-based record number, 0 when unknown
	Field  string
	Reason string
}

func (e *MalformedTransactionError) Error() string {
	if e.Record > 0 {
		return fmt.Sprintf("malformed transaction at record %d: field %q: %s", e.Record, e.Field, e.Reason)
	}
	return fmt.Sprintf("malformed transaction: field %q: %s", e.Field, e.Reason)
}

// Validate checks the invariants every loaded transaction must satisfy.
func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return &MalformedTransactionError{Field: "date", Reason: "missing or unparseable"}
	}
	if _, ok := ParseCategory(string(t.Category)); !ok {
		return &MalformedTransactionError{Field: "category", Reason: fmt.Sprintf("unknown category %q", t.Category)}
	}
	if t.Amount <= 0 {
		return &MalformedTransactionError{Field: "amount", Reason: fmt.Sprintf("must be positive, got %v", t.Amount)}
	}
	return nil
}

// WeekStart returns the Monday of the calendar week containing t.Date.
// All historical bucketing uses Monday-anchored weeks.
func (t Transaction) WeekStart() time.Time {
	return WeekStartOf(t.Date)
}

// WeekStartOf returns the Monday of the calendar week containing d,
// truncated to midnight in d's location.
func WeekStartOf(d time.Time) time.Time {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}
