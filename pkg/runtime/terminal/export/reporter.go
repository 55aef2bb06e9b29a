package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

const (
	FormatTable = "table"
	FormatList  = "list"
)

type Reporter interface {
	Handle(report *domain.Report) error
}

// NewReporter returns the reporter for format, defaulting to the table layout.
func NewReporter(writer io.Writer, format string) (Reporter, error) {
	switch format {
	case "", FormatTable:
		return NewTableReporter(writer), nil
	case FormatList:
		return NewListReporter(writer), nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

type TableConfig struct {
	NameWidth        int
	ValueWidth       int
	UnitWidth        int
	DescriptionWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:        28,
		ValueWidth:       16,
		UnitWidth:        6,
		DescriptionWidth: 72,
	}
}

const header = `
{{.Title}}{{if .Period.Duration}} ({{.Period.Duration}} days){{end}}

Period: {{.Period.Label}}
{{- if not .TotalAmount.IsZero}}
Total Amount: {{.Currency}} {{.TotalAmount.StringFixed 2}}
{{- end}}
`

type TableReporter struct {
	writer io.Writer
	config TableConfig
}

func NewTableReporter(writer io.Writer) *TableReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &TableReporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *TableReporter) Handle(report *domain.Report) error {
	funcMap := template.FuncMap{
		"formatRow": func(name string, value interface{}, unit string, desc string) string {
			return fmt.Sprintf("| %-*s | %-*v | %-*s | %-*s |",
				c.config.NameWidth, name,
				c.config.ValueWidth, value,
				c.config.UnitWidth, unit,
				c.config.DescriptionWidth, desc)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.UnitWidth+2),
				strings.Repeat("-", c.config.DescriptionWidth+2))
		},
	}

	tmpl := header + `
{{range .Sections}}
=== {{.Title}} ===
{{range $key, $value := .Summary}}{{$key}}: {{$value}}
{{end}}
{{- if .Details}}
{{separator}}
{{formatRow "Name" "Value" "Unit" "Description"}}
{{separator}}
{{range .Details}}{{formatRow .Name .Value .Unit .Description}}
{{end}}{{separator}}
{{end}}{{end}}`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}

// ListReporter outputs reports as indented plain text
type ListReporter struct {
	writer io.Writer
}

func NewListReporter(writer io.Writer) *ListReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &ListReporter{writer: writer}
}

func (c *ListReporter) Handle(report *domain.Report) error {
	tmpl := header + `
{{range .Sections}}
=== {{.Title}} ===
{{range $key, $value := .Summary}}{{$key}}: {{$value}}
{{end}}
{{- range .Details}}
- {{.Name}}: {{.Value}}{{if .Unit}} {{.Unit}}{{end}}
{{- if .Description}}
  {{.Description}}
{{- end}}
{{- end}}
{{end}}`

	t, err := template.New("report").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}
