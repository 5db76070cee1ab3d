package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/teranos/itl2py/errors"
	"github.com/teranos/itl2py/typegen/driver"
	"github.com/teranos/itl2py/watcher"
)

// WatchCmd regenerates whenever an input changes.
var WatchCmd = &cobra.Command{
	Use:   "watch <file.itl>...",
	Short: "Regenerate when ITL inputs change",
	Long: `Generate once, then again every time one of the inputs is written.
Bursts of changes are debounced and runs are rate limited. A failed run is
logged and the previous output is left in place.

Examples:
  itl2py watch basic.itl
  itl2py watch --debounce 1s -o build basic.itl`,
	RunE: runWatch,
}

func init() {
	addWatchFlags(WatchCmd.Flags())
}

func addWatchFlags(fs *pflag.FlagSet) {
	fs.Duration("debounce", watcher.DefaultDebounce, "Quiet period before regenerating")
	fs.Int("max-runs", watcher.DefaultRunsPerMinute, "Maximum runs per minute")
}

// watchOptions validates the watch flags.
func watchOptions(cmd *cobra.Command) ([]watcher.Option, error) {
	debounce, _ := cmd.Flags().GetDuration("debounce")
	maxRuns, _ := cmd.Flags().GetInt("max-runs")
	if debounce < 0 {
		return nil, errors.WithHint(
			errors.NewConfigError("--debounce must not be negative, got %s", debounce),
			"use 0 to regenerate right after each change",
		)
	}
	if maxRuns <= 0 {
		return nil, errors.WithHint(
			errors.NewConfigError("--max-runs must be positive, got %d", maxRuns),
			fmt.Sprintf("the default is %d runs per minute", watcher.DefaultRunsPerMinute),
		)
	}
	return []watcher.Option{
		watcher.WithDebounce(debounce),
		watcher.WithRunsPerMinute(maxRuns),
	}, nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts, err := watchOptions(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	d := driver.New(os.Stdout)
	run := func(ctx context.Context) error {
		result, err := d.Run(ctx, cfg)
		if err != nil {
			pterm.Error.Printfln("%v", err)
			return err
		}
		pterm.Success.Printfln("%s regenerated %d files", time.Now().Format("15:04:05"), len(result.Written))
		return nil
	}

	w, err := watcher.New(cfg.ITLFiles, run, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pterm.Info.Printfln("Watching %d files (Ctrl+C to stop)", len(cfg.ITLFiles))
	return w.Run(ctx)
}
