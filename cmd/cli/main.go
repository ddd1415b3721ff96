package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"coinlab/adapters/export"
	"coinlab/adapters/rng"
	"coinlab/domain/coin"
	"coinlab/domain/stats"
	"coinlab/internal/analysis"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "coinlab-cli",
		Short: "Coin Lab CLI for coin flip simulation and fairness testing",
	}

	rootCmd.AddCommand(
		newFlipCmd(),
		newTestCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newFlipCmd() *cobra.Command {
	var count int
	var probability float64
	var seed int64
	var csvPath string
	var xlsxPath string

	cmd := &cobra.Command{
		Use:   "flip",
		Short: "Simulate coin flips and run the fairness test",
		Long: `Simulate biased coin flips, print summary statistics, the two-sided
binomial fairness test, and a sequence profile.

Example: coinlab-cli flip --count 100 --probability 0.6 --seed 42 --csv flips.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter := rng.NewAdapter()
			stream := adapter.Stream("cli-flip")
			if cmd.Flags().Changed("seed") {
				stream = adapter.SeededStream("cli-flip", seed)
			}

			trials, err := coin.Generate(stream, count, coin.MaxFlipsDefault, probability)
			if err != nil {
				return err
			}

			summary := coin.Summarize(trials)
			test, err := stats.BinomialTest(summary.Heads, summary.Total, 0.5)
			if err != nil {
				return err
			}
			profile := analysis.ProfileSequence(trials)

			fmt.Printf("Flips:  %d (heads probability %.2f)\n", summary.Total, probability)
			fmt.Printf("Heads:  %d (%.1f%%)\n", summary.Heads, summary.HeadsPct)
			fmt.Printf("Tails:  %d (%.1f%%)\n", summary.Tails, summary.TailsPct)
			fmt.Println()
			fmt.Printf("p-value: %.4f (alpha %.2f)\n", test.PValue, test.Alpha)
			if test.IsFair {
				fmt.Println("Verdict: the coin looks fair")
			} else {
				fmt.Println("Verdict: the coin looks biased")
			}
			fmt.Printf("Expected heads at %.0f%% confidence: [%d, %d]\n",
				test.ConfidenceLevel*100, test.CILow, test.CIHigh)
			fmt.Println()
			fmt.Printf("Longest runs: %d heads, %d tails; lead changes: %d\n",
				profile.LongestHeadsRun, profile.LongestTailsRun, profile.LeadChanges)

			if csvPath != "" {
				if err := writeFile(csvPath, trials, export.WriteCSV); err != nil {
					return err
				}
				fmt.Printf("Wrote %s\n", csvPath)
			}
			if xlsxPath != "" {
				if err := writeFile(xlsxPath, trials, export.WriteXLSX); err != nil {
					return err
				}
				fmt.Printf("Wrote %s\n", xlsxPath)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 10, "number of flips (1-1000)")
	cmd.Flags().Float64VarP(&probability, "probability", "p", 0.5, "heads probability in [0,1]")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for deterministic output")
	cmd.Flags().StringVar(&csvPath, "csv", "", "write the flip table to this CSV file")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write the flip table to this XLSX file")

	return cmd
}

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test [heads] [total]",
		Short: "Run the two-sided binomial fairness test for given counts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			heads, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("heads must be an integer: %w", err)
			}
			total, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("total must be an integer: %w", err)
			}

			result, err := stats.BinomialTest(heads, total, 0.5)
			if err != nil {
				return err
			}

			fmt.Printf("p-value: %.6f\n", result.PValue)
			if result.IsFair {
				fmt.Println("Verdict: consistent with a fair coin")
			} else {
				fmt.Println("Verdict: inconsistent with a fair coin")
			}
			fmt.Printf("Expected heads at %.0f%% confidence: [%d, %d]\n",
				result.ConfidenceLevel*100, result.CILow, result.CIHigh)
			return nil
		},
	}
	return cmd
}

func writeFile(path string, trials coin.TrialSequence, write func(w io.Writer, trials coin.TrialSequence) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f, trials)
}
