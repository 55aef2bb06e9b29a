package terminal

import (
	"io"
	"os"

	"github.com/de-tools/sales-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/sales-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/sales-atlas/pkg/services/sources"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	env     *commands.Env
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Sources sources.Registry
	Output  io.Writer
	Logger  zerolog.Logger
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		env: &commands.Env{
			Sources: opts.Sources,
			Output:  opts.Output,
			Logger:  opts.Logger,
		},
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// SetArgs overrides os.Args; used by tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sales-atlas",
		Short:         "Sales analytics dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(cli.env.Output)

	flags := cmd.PersistentFlags()
	flags.StringVar(&cli.env.ConfigPath, "config", "", "Path to the settings file")
	flags.StringVar(&cli.env.ProfilesPath, "profiles", "", "Path to the source profiles file")
	flags.StringVar(&cli.env.SourceName, "source", "", "Source profile to load")
	flags.StringVar(&cli.env.Format, "format", export.FormatTable, "Output format: table or list")

	cmd.AddCommand(commands.NewSummaryCmd(cli.env))
	cmd.AddCommand(commands.NewInsightsCmd(cli.env))
	cmd.AddCommand(commands.NewCompareCmd(cli.env))
	cmd.AddCommand(commands.NewOptionsCmd(cli.env))
	cmd.AddCommand(commands.NewIngestCmd(cli.env))
	cmd.AddCommand(commands.NewSourcesCmd(cli.env))

	return cmd
}
