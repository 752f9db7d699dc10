package app

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/paclog/internal/filter"
	"github.com/blackwell-systems/paclog/internal/logfile"
	"github.com/blackwell-systems/paclog/internal/logger"
	"github.com/blackwell-systems/paclog/internal/output"
	"github.com/blackwell-systems/paclog/internal/paclog"
	"github.com/blackwell-systems/paclog/internal/pipeline"
)

// Version is set at build time with -ldflags "-X .../internal/app.Version=...".
var Version = "dev"

var (
	beforeDate string
	afterDate  string
	logPath    string
	verbose    bool

	// RootCmd is the root command for paclog
	RootCmd = &cobra.Command{
		Use:   "paclog [package...]",
		Short: "Pacman log but prettier",
		Long: `paclog lists the package changes recorded in the pacman log
(installed, upgraded, downgraded and removed packages), one per line.

Package arguments select which packages to show and may use '*' as a
wildcard matching any sequence of characters. Without arguments every
package is shown. Dates are inclusive and use the YYYY-MM-DD format.

Output is colored when stdout is a terminal. Set NO_COLOR to disable colors.`,
		Example: `  # Everything in the log
  paclog

  # History of one package
  paclog vim

  # All python packages and the kernel
  paclog 'python-*' linux

  # Changes made during January 2024
  paclog --after 2024-01-01 --before 2024-01-31

  # Read a rotated log
  paclog --log /var/log/pacman.log.1`,
		Args:          cobra.ArbitraryArgs,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}
)

func init() {
	RootCmd.Flags().StringVar(&beforeDate, "before", "", "show changes on or before this date (YYYY-MM-DD)")
	RootCmd.Flags().StringVar(&afterDate, "after", "", "show changes on or after this date (YYYY-MM-DD)")
	RootCmd.Flags().StringVar(&logPath, "log", logfile.DefaultPath, "pacman log file to read")
	RootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "report skipped lines on stderr")
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// runConfig is everything a run needs once flags are parsed.
type runConfig struct {
	globs   []string
	before  string
	after   string
	logPath string
	color   bool
	verbose bool
}

func runRoot(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	// Colors are decided once, from the real destination.
	color := false
	if f, ok := out.(*os.File); ok {
		color = output.IsColorEnabled(f)
	}

	return run(runConfig{
		globs:   args,
		before:  beforeDate,
		after:   afterDate,
		logPath: logPath,
		color:   color,
		verbose: verbose,
	}, out, cmd.ErrOrStderr())
}

// run validates the filters, opens the log and renders matching events to out.
// Setup problems are returned before anything is written.
func run(cfg runConfig, out, errOut io.Writer) error {
	patterns, err := filter.CompileAll(cfg.globs)
	if err != nil {
		return err
	}

	dates, err := filter.NewDateRange(cfg.before, cfg.after)
	if err != nil {
		return err
	}

	src, err := logfile.Open(cfg.logPath)
	if err != nil {
		return err
	}
	defer src.Close()

	log := logger.New(errOut, cfg.verbose)
	defer log.Sync() //nolint:errcheck

	p := pipeline.New(
		paclog.NewParser(),
		pipeline.Options{Patterns: patterns, Dates: dates},
		output.NewRenderer(out, cfg.color),
		log,
	)

	if _, err := p.Run(src.Reader()); err != nil {
		return fmt.Errorf("failed to process %s: %w", src.Path(), err)
	}
	return nil
}
