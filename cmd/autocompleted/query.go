package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcdavis/cobb2/pkg/autocomplete"
	"github.com/jcdavis/cobb2/pkg/logger"
)

func newQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query <corpus-file> <query>",
		Short: "Load a corpus file, run a single query, and print the matches",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logger.New("autocompleted-query")

			instance, err := loadCorpus(ctx, log, args[0], optionFuncs()...)
			if err != nil {
				return err
			}
			defer instance.Close(ctx)

			printMatches(ctx, instance, args[1])
			return nil
		},
	}
}

// printMatches runs query against instance and prints one line per match,
// ranked in the order Search already returned them in.
func printMatches(ctx context.Context, instance *autocomplete.Instance, query string) {
	matches, err := instance.Search(ctx, query)
	if err != nil {
		fmt.Println("search failed:", err)
		return
	}
	if len(matches) == 0 {
		fmt.Println("(no matches)")
		return
	}
	for _, m := range matches {
		fmt.Printf("%6d  %s  (offset %d)\n", m.Score, m.Text, m.MatchOffset)
	}
}
