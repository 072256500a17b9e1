// Command rawscan-cat copies a file, or stdin, to stdout a line at a
// time through the scanner, exercising the pause/resume protocol end to
// end.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mdsn/rawscan/lib/follow"
	"github.com/mdsn/rawscan/lib/harness"
	"github.com/mdsn/rawscan/lib/rawscan"
)

var (
	bufsz         int
	delim         string
	followMode    bool
	forceBufszEnv bool
)

var rootCmd = &cobra.Command{
	Use:   "rawscan-cat [file]",
	Short: "Copy input to output a line at a time through the rawscan scanner",
	Args:  cobra.MaximumNArgs(1),
	RunE:  run,
}

func init() {
	rootCmd.Flags().IntVar(&bufsz, "bufsz", 16*4096, "scanner working buffer size in bytes")
	rootCmd.Flags().StringVar(&delim, "delim", "\n", "single-byte record delimiter")
	rootCmd.Flags().BoolVar(&followMode, "follow", false, "keep reading as the file grows, like tail -f (requires a file argument)")
	rootCmd.Flags().BoolVar(&forceBufszEnv, "force-bufsz-env", false, "let RAWSCAN_FORCE_BUFSZ override --bufsz")
}

func run(cmd *cobra.Command, args []string) error {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()
	sugar := logger.Sugar()

	runID := uuid.New()
	sugar.Infow("starting rawscan-cat", "run_id", runID, "bufsz", bufsz, "follow", followMode)

	if len(delim) != 1 {
		return fmt.Errorf("--delim must be exactly one byte, got %q", delim)
	}

	rawscan.AllowForceBufSizeEnv = forceBufszEnv

	var (
		in  io.ReadCloser
		err error
	)
	switch {
	case followMode && len(args) == 1:
		in, err = follow.Open(args[0])
	case len(args) == 1:
		in, err = os.Open(args[0])
	case followMode:
		return fmt.Errorf("--follow requires a file argument")
	default:
		in = os.Stdin
	}
	if err != nil {
		sugar.Errorw("failed to open input", "run_id", runID, "error", err)
		return err
	}
	defer in.Close()

	if err := harness.CopyLines(in, os.Stdout, bufsz, delim[0]); err != nil {
		sugar.Errorw("copy failed", "run_id", runID, "error", err)
		return err
	}

	sugar.Infow("done", "run_id", runID)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
