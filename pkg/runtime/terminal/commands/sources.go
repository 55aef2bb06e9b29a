package commands

import (
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/spf13/cobra"
)

func NewSourcesCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List configured source profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := env.Context()
			defer cancel()

			settings, err := env.Settings()
			if err != nil {
				return err
			}
			reporter, err := env.Reporter()
			if err != nil {
				return err
			}
			registry, err := env.Profiles(settings)
			if err != nil {
				return err
			}
			names, err := registry.GetProfiles(ctx)
			if err != nil {
				return err
			}

			section := domain.ReportSection{
				Title:   "Profiles",
				Summary: map[string]interface{}{"Supported types": env.Sources.ListTypes()},
			}
			for _, name := range names {
				detail := domain.ReportDetail{Name: name}
				profile, err := registry.GetProfile(ctx, name)
				if err != nil {
					detail.Value = "invalid"
					detail.Description = err.Error()
				} else {
					detail.Value = string(profile.Type)
					detail.Description = describe(profile)
				}
				section.Details = append(section.Details, detail)
			}

			return reporter.Handle(&domain.Report{
				Title:    "Sources",
				Period:   domain.TimePeriod{Label: "n/a"},
				Sections: []domain.ReportSection{section},
			})
		},
	}
}

func describe(p *domain.SourceProfile) string {
	switch p.Type {
	case domain.SourceTypeFile, domain.SourceTypeDuckDB:
		return p.Path
	case domain.SourceTypeS3:
		return "s3://" + p.Bucket + "/" + p.Key
	}
	return p.Table
}
