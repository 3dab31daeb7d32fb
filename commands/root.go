package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"auction-scraper/config"
	"auction-scraper/utils"

	"github.com/spf13/cobra"
)

var cfg *config.Config

var flags struct {
	out         string
	soldOnly    bool
	maxListings int
	scrolls     int
	headless    bool
}

var rootCmd = &cobra.Command{
	Use:           "auction-scraper",
	Short:         "auction-scraper pulls vehicle auction results into a CSV file.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		applyFlags(cmd, loaded)
		if err := loaded.Validate(); err != nil {
			return err
		}
		if err := utils.SetupLogger(loaded.LogLevel, loaded.LogFormat); err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.out, "out", "", "CSV output path (overrides SCRAPER_CSV_PATH)")
	pf.BoolVar(&flags.soldOnly, "sold-only", false, "write only listings that sold with a price")
	pf.IntVar(&flags.maxListings, "max-listings", 0, "cap on listing pages fetched by crawl")
	pf.IntVar(&flags.scrolls, "scrolls", 0, "page-down steps before capturing a rendered page")
	pf.BoolVar(&flags.headless, "headless", true, "run Chrome without a window")
}

// applyFlags overrides config values with flags the user actually set.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	pf := cmd.Flags()
	if pf.Changed("out") {
		c.CSVPath = flags.out
	}
	if pf.Changed("sold-only") {
		c.SoldOnly = flags.soldOnly
	}
	if pf.Changed("max-listings") {
		c.MaxListings = flags.maxListings
	}
	if pf.Changed("scrolls") {
		c.ScrollCount = flags.scrolls
	}
	if pf.Changed("headless") {
		c.Headless = flags.headless
	}
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// targetURL returns the positional URL argument or the fallback.
func targetURL(args []string, fallback string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return fallback
}
