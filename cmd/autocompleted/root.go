// Command autocompleted is a small bulk-load harness around
// pkg/autocomplete: it reads a corpus file of score/string pairs, builds
// an in-memory index from it, and lets a caller query that index from the
// terminal. It stands in for the HTTP front-end the library itself stays
// out of.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jcdavis/cobb2/pkg/options"
)

var flags struct {
	splitThreshold uint32
	bucketCount    uint32
	presplitLow    uint8
	presplitHigh   uint8
	presplitDepth  int
	maxResults     int
	minScore       uint32
	startChars     string
	middleChars    string
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "autocompleted",
		Short:         "Bulk-load and query an in-memory autocompletion index",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().Uint32Var(&flags.splitThreshold, "split-threshold", options.DefaultSplitThreshold,
		"number of entries in a hash node at which its next insert splits it into a trie node")
	root.PersistentFlags().Uint32Var(&flags.bucketCount, "bucket-count", options.DefaultBucketCount,
		"number of buckets in every hash node")
	root.PersistentFlags().Uint8Var(&flags.presplitLow, "presplit-low", 0,
		"low byte (inclusive) of the range pre-built into trie nodes at startup")
	root.PersistentFlags().Uint8Var(&flags.presplitHigh, "presplit-high", 0,
		"high byte (inclusive) of the range pre-built into trie nodes at startup")
	root.PersistentFlags().IntVar(&flags.presplitDepth, "presplit-depth", 0,
		"depth of the presplit range; 0 disables presplitting")
	root.PersistentFlags().IntVar(&flags.maxResults, "max-results", options.DefaultMaxResults,
		"default maximum number of deduplicated results per query")
	root.PersistentFlags().Uint32Var(&flags.minScore, "min-score", options.DefaultMinScore,
		"score floor below which entries are excluded from results")
	root.PersistentFlags().StringVar(&flags.startChars, "start-chars", "",
		"bytes that unconditionally start a new suffix")
	root.PersistentFlags().StringVar(&flags.middleChars, "middle-chars", options.DefaultMiddleBytes,
		"bytes whose run-ends start a new suffix (word separators)")

	root.AddCommand(newIngestCmd())
	root.AddCommand(newQueryCmd())
	return root
}

// optionFuncs builds the OptionFuncs shared by every subcommand from the
// persistent flags above.
func optionFuncs() []options.OptionFunc {
	opts := []options.OptionFunc{
		options.WithSplitThreshold(flags.splitThreshold),
		options.WithBucketCount(flags.bucketCount),
		options.WithMaxResults(flags.maxResults),
		options.WithMinScore(flags.minScore),
		options.WithMiddleChars(flags.middleChars),
	}
	if flags.startChars != "" {
		opts = append(opts, options.WithStartChars(flags.startChars))
	}
	if flags.presplitDepth > 0 {
		opts = append(opts, options.WithPresplit(flags.presplitLow, flags.presplitHigh, flags.presplitDepth))
	}
	return opts
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "autocompleted:", err)
		os.Exit(1)
	}
}
