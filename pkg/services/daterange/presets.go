package daterange

// Preset identifies a "now"-relative window definition.
type Preset string

const (
	Today       Preset = "today"
	Yesterday   Preset = "yesterday"
	ThisWeek    Preset = "this_week"
	LastWeek    Preset = "last_week"
	ThisMonth   Preset = "this_month"
	LastMonth   Preset = "last_month"
	ThisQuarter Preset = "this_quarter"
	LastQuarter Preset = "last_quarter"
	ThisYear    Preset = "this_year"
	LastYear    Preset = "last_year"
	Last7Days   Preset = "last_7_days"
	Last30Days  Preset = "last_30_days"
	Last90Days  Preset = "last_90_days"
	YearToDate  Preset = "year_to_date"
)

var presetLabels = map[Preset]string{
	Today:       "Today",
	Yesterday:   "Yesterday",
	ThisWeek:    "This Week",
	LastWeek:    "Last Week",
	ThisMonth:   "This Month",
	LastMonth:   "Last Month",
	ThisQuarter: "This Quarter",
	LastQuarter: "Last Quarter",
	ThisYear:    "This Year",
	LastYear:    "Last Year",
	Last7Days:   "Last 7 Days",
	Last30Days:  "Last 30 Days",
	Last90Days:  "Last 90 Days",
	YearToDate:  "Year to Date",
}

// Presets returns every supported preset in menu order.
func Presets() []Preset {
	return []Preset{
		Today, Yesterday,
		ThisWeek, LastWeek,
		ThisMonth, LastMonth,
		ThisQuarter, LastQuarter,
		ThisYear, LastYear,
		Last7Days, Last30Days, Last90Days,
		YearToDate,
	}
}

func (p Preset) Label() string {
	return presetLabels[p]
}

func (p Preset) Valid() bool {
	_, ok := presetLabels[p]
	return ok
}
