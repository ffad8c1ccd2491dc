package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jcdavis/cobb2/pkg/logger"
)

func newIngestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <corpus-file>",
		Short: "Load a corpus file and open an interactive query prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logger.New("autocompleted-ingest")

			instance, err := loadCorpus(ctx, log, args[0], optionFuncs()...)
			if err != nil {
				return err
			}
			defer instance.Close(ctx)

			fmt.Println("type a query and press enter; empty line or ctrl-d to exit")
			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					break
				}
				query := strings.TrimSpace(scanner.Text())
				if query == "" {
					break
				}
				printMatches(ctx, instance, query)
			}
			return scanner.Err()
		},
	}
}
