package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is a single sales transaction. Records are treated as immutable once
// loaded into the engine.
type Record struct {
	ID            string
	Date          time.Time
	Customer      string
	Product       string
	Category      string
	Amount        decimal.Decimal
	Quantity      int
	PaymentMethod string
	SalesRep      string
	Region        string
}

// Dimension names a groupable attribute of a record.
type Dimension string

const (
	DimensionCategory      Dimension = "category"
	DimensionRegion        Dimension = "region"
	DimensionSalesRep      Dimension = "salesRep"
	DimensionPaymentMethod Dimension = "paymentMethod"
	DimensionProduct       Dimension = "product"
	DimensionCustomer      Dimension = "customer"
)

// Value returns the record attribute for the dimension, or "" when the
// dimension is unknown or the attribute is missing.
func (r Record) Value(dim Dimension) string {
	switch dim {
	case DimensionCategory:
		return r.Category
	case DimensionRegion:
		return r.Region
	case DimensionSalesRep:
		return r.SalesRep
	case DimensionPaymentMethod:
		return r.PaymentMethod
	case DimensionProduct:
		return r.Product
	case DimensionCustomer:
		return r.Customer
	}
	return ""
}

// Measure names a numeric record field.
type Measure string

const (
	MeasureAmount   Measure = "amount"
	MeasureQuantity Measure = "quantity"
)

func (r Record) Measure(m Measure) decimal.Decimal {
	if m == MeasureQuantity {
		return decimal.NewFromInt(int64(r.Quantity))
	}
	return r.Amount
}
