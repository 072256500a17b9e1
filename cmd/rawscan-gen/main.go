// Command rawscan-gen writes N delimited records of random length over a
// configurable alphabet, for driving a scanner under test.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mdsn/rawscan/lib/genline"
)

var (
	numLines      int
	minLen        int
	maxLen        int
	delim         string
	alphabet      string
	noTrailingDlm bool
	seedState     uint64
	seedSeq       uint64
)

var rootCmd = &cobra.Command{
	Use:   "rawscan-gen",
	Short: "Generate random delimited lines for scanner stress testing",
	RunE:  run,
}

func init() {
	rootCmd.Flags().IntVarP(&numLines, "number", "n", 1_000_000, "number of lines to generate")
	rootCmd.Flags().IntVar(&minLen, "min", 0, "minimum record length, excluding the delimiter")
	rootCmd.Flags().IntVar(&maxLen, "max", 15, "maximum record length, excluding the delimiter")
	rootCmd.Flags().StringVar(&delim, "delim", "\n", "single-byte record delimiter")
	rootCmd.Flags().StringVar(&alphabet, "alphabet", genline.Base64Alphabet, "characters records are drawn from")
	rootCmd.Flags().BoolVar(&noTrailingDlm, "no-trailing-delimiter", false, "omit the delimiter from the final record")
	rootCmd.Flags().Uint64Var(&seedState, "seed-state", genline.DefaultInitState, "PCG32 initial state")
	rootCmd.Flags().Uint64Var(&seedSeq, "seed-seq", genline.DefaultInitSeq, "PCG32 stream selector")
}

func run(cmd *cobra.Command, args []string) error {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()
	sugar := logger.Sugar()

	if numLines <= 0 {
		return fmt.Errorf("-n must be positive, got %d", numLines)
	}
	if len(delim) != 1 {
		return fmt.Errorf("--delim must be exactly one byte, got %q", delim)
	}

	rng := genline.NewPCG32(seedState, seedSeq)
	g, err := genline.NewGenerator(rng, []byte(alphabet), minLen, maxLen, delim[0])
	if err != nil {
		return err
	}

	sugar.Infow("generating lines", "n", numLines, "min", minLen, "max", maxLen)

	w := bufio.NewWriter(os.Stdout)
	if err := g.WriteLines(w, numLines, noTrailingDlm); err != nil {
		sugar.Errorw("write failed", "error", err)
		return err
	}
	return w.Flush()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
