package metrics

import (
	"fmt"
	"io"
	"sort"

	mintertypes "github.com/skip-mev/minter/types"
)

func PrintResults(w io.Writer, result mintertypes.RunResult) {
	fmt.Fprintln(w, "\n=== Run Results ===")

	fmt.Fprintln(w, "\n🎯 Overall Statistics:")
	fmt.Fprintf(w, "Wallets: %d\n", result.Overall.Wallets)
	fmt.Fprintf(w, "Total Submissions: %d\n", result.Overall.TotalSubmissions)
	fmt.Fprintf(w, "Successful Submissions: %d\n", result.Overall.SuccessfulSubmissions)
	fmt.Fprintf(w, "Failed Submissions: %d\n", result.Overall.FailedSubmissions)
	fmt.Fprintf(w, "Runtime: %s\n", result.Overall.Runtime)
	if result.Error != "" {
		fmt.Fprintf(w, "Error: %s\n", result.Error)
	}

	fmt.Fprintln(w, "\n📊 Action Statistics:")
	printStats(w, result.ByAction)

	fmt.Fprintln(w, "\n👛 Wallet Statistics:")
	printStats(w, result.ByWallet)
}

func printStats(w io.Writer, stats map[string]mintertypes.SubmissionStats) {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s := stats[name]
		fmt.Fprintf(w, "\n%s:\n", name)
		fmt.Fprintf(w, "  Total: %d\n", s.Total)
		fmt.Fprintf(w, "  Successful: %d\n", s.Successful)
		fmt.Fprintf(w, "  Failed: %d\n", s.Failed)
	}
}
