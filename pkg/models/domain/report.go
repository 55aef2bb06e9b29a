package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Report is a printable rendering of dashboard results
type Report struct {
	Title       string
	Period      TimePeriod
	Sections    []ReportSection
	TotalAmount decimal.Decimal
	Currency    string
}

// TimePeriod represents the window a report covers. Zero Start/End means all time.
type TimePeriod struct {
	Label    string
	Start    time.Time
	End      time.Time
	Duration int // in days
}

// ReportSection represents a logical section in the report
type ReportSection struct {
	Title   string
	Summary map[string]interface{}
	Details []ReportDetail
}

// ReportDetail represents detailed information within a section
type ReportDetail struct {
	Name        string
	Value       interface{}
	Unit        string
	Description string
}
