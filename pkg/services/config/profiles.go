package config

import (
	"context"
	"fmt"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/snowflakedb/gosnowflake"
	"gopkg.in/ini.v1"
)

const defaultDatabricksHTTPPath = "/sql/1.0/warehouses/default"

// Registry reads source profiles from an ini file, one section per source:
//
//	[demo]
//	type = file
//	path = ./data/sales.json
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (*domain.SourceProfile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source profiles: %w", err)
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func NewRegistryFromBytes(data []byte) (Registry, error) {
	cfg, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source profiles: %w", err)
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, name string) (*domain.SourceProfile, error) {
	section, err := cr.cfg.GetSection(name)
	if err != nil || len(section.Keys()) == 0 {
		return nil, fmt.Errorf("profile %s not found", name)
	}

	profile := &domain.SourceProfile{
		Name:       name,
		Type:       domain.SourceType(section.Key("type").String()),
		Path:       section.Key("path").String(),
		Bucket:     section.Key("bucket").String(),
		Key:        section.Key("key").String(),
		Region:     section.Key("region").String(),
		AWSProfile: section.Key("aws_profile").String(),
		DSN:        section.Key("dsn").String(),
		Table:      section.Key("table").MustString("sales"),
	}

	switch profile.Type {
	case domain.SourceTypeFile, domain.SourceTypeDuckDB:
		if profile.Path == "" {
			return nil, fmt.Errorf("profile %s: path is required", name)
		}
	case domain.SourceTypeS3:
		if profile.Bucket == "" || profile.Key == "" {
			return nil, fmt.Errorf("profile %s: bucket and key are required", name)
		}
	case domain.SourceTypeDatabricks:
		if profile.DSN == "" {
			profile.DSN, err = databricksDSN(section)
		}
	case domain.SourceTypeSnowflake:
		if profile.DSN == "" {
			profile.DSN, err = snowflakeDSN(section)
		}
	default:
		return nil, fmt.Errorf("profile %s: unknown source type %q", name, profile.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", name, err)
	}
	return profile, nil
}

func databricksDSN(section *ini.Section) (string, error) {
	host := section.Key("host").String()
	token := section.Key("token").String()
	if host == "" || token == "" {
		return "", fmt.Errorf("host and token are required")
	}
	httpPath := section.Key("http_path").MustString(defaultDatabricksHTTPPath)
	return fmt.Sprintf("token:%s@%s%s", token, host, httpPath), nil
}

func snowflakeDSN(section *ini.Section) (string, error) {
	cfg := &gosnowflake.Config{
		Account:   section.Key("account").String(),
		User:      section.Key("user").String(),
		Password:  section.Key("password").String(),
		Database:  section.Key("database").String(),
		Schema:    section.Key("schema").String(),
		Warehouse: section.Key("warehouse").String(),
		Role:      section.Key("role").String(),
	}
	dsn, err := gosnowflake.DSN(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to create DSN: %w", err)
	}
	return dsn, nil
}
