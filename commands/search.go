package commands

import (
	"auction-scraper/config"
	"auction-scraper/scraper/bat"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [url]",
	Short: "Renders a search results page in Chrome, scrolling to load more cards, and extracts every card.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		browser := newBrowserFetcher()
		defer browser.Close()

		s := bat.NewScraper(cfg, nil, browser)
		listings, err := s.Search(cmd.Context(), targetURL(args, cfg.SearchURL))
		if err != nil {
			return err
		}
		return save(cmd.OutOrStdout(), listings)
	},
}

func newBrowserFetcher() *bat.BrowserFetcher {
	return bat.NewBrowserFetcher(browserOptions(cfg))
}

func browserOptions(c *config.Config) bat.BrowserOptions {
	return bat.BrowserOptions{
		Headless:    c.Headless,
		UserAgent:   c.UserAgent,
		Timeout:     c.RequestTimeout,
		SettleTime:  c.SettleTime,
		ScrollCount: c.ScrollCount,
		ScrollPause: c.ScrollPause,
	}
}
