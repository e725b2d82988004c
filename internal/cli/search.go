package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"gamesearch/internal/search"
)

const separator = "----------------------------------------"

func newSearchCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query...>",
		Short: "Search the store once and print every result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			p := newPipeline(opts.cfg, opts.log)
			defer p.Close()

			results, err := p.engine.Run(cmd.Context(), query)
			if err != nil && !errors.Is(err, search.ErrNoResults) {
				return err
			}

			printResults(cmd.OutOrStdout(), results)
			return nil
		},
	}
}

func printResults(w io.Writer, results []search.Result) {
	if len(results) == 0 {
		fmt.Fprintln(w, "no results")
		return
	}

	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w, separator)
		}
		fmt.Fprintln(w, r.Body)
		for _, l := range r.Links {
			fmt.Fprintf(w, "  %s: %s\n", l.Label, l.URL)
		}
	}
}
