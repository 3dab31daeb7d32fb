package commands

import (
	"auction-scraper/scraper/bat"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(crawlCmd)
}

var crawlCmd = &cobra.Command{
	Use:   "crawl [url]",
	Short: "Fetches a model page over HTTP, then each listing page it links to.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pages := bat.NewHTTPFetcher(bat.HTTPOptions{
			Timeout:   cfg.RequestTimeout,
			UserAgent: cfg.UserAgent,
			BypassCF:  cfg.BypassCF,
		})

		s := bat.NewScraper(cfg, pages, nil)
		listings, err := s.Crawl(cmd.Context(), targetURL(args, cfg.ModelURL))
		if err != nil {
			return err
		}
		return save(cmd.OutOrStdout(), listings)
	},
}
