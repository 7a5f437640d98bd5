package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags. Only
// the flags handled here are considered, see flagx.FilterArgs.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-f", "-t", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the job tracker API")
	fs.StringVar(&cfg.SessionDB, "f", cfg.SessionDB, "path of the local session database")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.Float64Var(&cfg.ScrapeRatePerSecond, "r", cfg.ScrapeRatePerSecond, "page fetches per second for import")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
