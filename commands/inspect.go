package commands

import (
	"fmt"

	"auction-scraper/scraper/bat"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [url]",
	Short: "Prints how many elements each container class matches and the first card's HTML.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		browser := newBrowserFetcher()
		defer browser.Close()

		s := bat.NewScraper(cfg, nil, browser)
		ins, err := s.Inspect(cmd.Context(), targetURL(args, cfg.ModelURL))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.SetOutputMirror(out)
		t.AppendHeader(table.Row{"Class", "Elements"})
		for _, c := range ins.Counts {
			t.AppendRow(table.Row{c.Class, c.Count})
		}
		t.Render()

		fmt.Fprintln(out, "\n--- HTML SNIPPET ---")
		fmt.Fprintln(out, ins.Snippet)

		if ins.FirstCard == "" {
			fmt.Fprintln(out, "\nNo card matched any fragment selector. The site might have changed the container name.")
			return nil
		}
		fmt.Fprintln(out, "\n--- HTML OF ONE CAR CARD ---")
		fmt.Fprintln(out, ins.FirstCard)
		return nil
	},
}
