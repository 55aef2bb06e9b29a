package commands

import (
	"fmt"

	"github.com/de-tools/sales-atlas/pkg/adapters"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb/sales"
	"github.com/spf13/cobra"
)

type IngestCmd struct {
	env    *Env
	target string
}

func NewIngestCmd(env *Env) *cobra.Command {
	ic := &IngestCmd{env: env}
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Copy the selected source into the embedded DuckDB store",
		RunE:  ic.run,
	}

	cmd.Flags().StringVar(&ic.target, "target", "", "DuckDB file to write (defaults to the duckdb setting)")

	return cmd
}

func (ic *IngestCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := ic.env.Context()
	defer cancel()

	settings, err := ic.env.Settings()
	if err != nil {
		return err
	}
	loc, err := settings.Location()
	if err != nil {
		return err
	}
	target := ic.target
	if target == "" {
		target = settings.DuckDB
	}

	profile, err := ic.env.Profile(ctx, settings)
	if err != nil {
		return err
	}
	src, err := ic.env.Sources.Open(ctx, *profile)
	if err != nil {
		return err
	}
	defer src.Close()

	rows, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", profile, err)
	}
	records, skipped := adapters.MapStoreSalesToDomain(ctx, rows, loc)

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: target})
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", target, err)
	}
	defer db.Close()

	st, err := sales.NewStore(db)
	if err != nil {
		return err
	}
	if err := st.Replace(ctx, profile.String(), adapters.MapDomainRecordsToStore(records), skipped); err != nil {
		return fmt.Errorf("failed to ingest %s: %w", profile, err)
	}

	stats, err := st.Stats(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(ic.env.Output, "Ingested %d records from %s into %s (%d skipped, %s to %s)\n",
		stats.RecordsCount, profile, target, skipped, stats.FirstDate, stats.LastDate)
	return err
}
