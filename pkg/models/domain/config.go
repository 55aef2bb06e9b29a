package domain

import "fmt"

type SourceType string

const (
	SourceTypeFile       SourceType = "file"
	SourceTypeS3         SourceType = "s3"
	SourceTypeDuckDB     SourceType = "duckdb"
	SourceTypeDatabricks SourceType = "databricks"
	SourceTypeSnowflake  SourceType = "snowflake"
)

// SourceProfile describes where the raw sales dataset is bulk-loaded from.
// Only the fields relevant to Type are set.
type SourceProfile struct {
	Name       string
	Type       SourceType
	Path       string // file, duckdb
	Bucket     string // s3
	Key        string // s3
	Region     string // s3
	AWSProfile string // s3
	DSN        string // databricks, snowflake
	Table      string // databricks, snowflake
}

func (s SourceProfile) String() string {
	return fmt.Sprintf("%s:%s", s.Type, s.Name)
}
