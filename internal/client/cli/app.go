package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/jobtracker/internal/client/client"
	"github.com/dmitrijs2005/jobtracker/internal/client/config"
	"github.com/dmitrijs2005/jobtracker/internal/client/scrape"
	"github.com/dmitrijs2005/jobtracker/internal/client/services"
	"github.com/dmitrijs2005/jobtracker/internal/client/session"

	_ "modernc.org/sqlite"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	jobService  services.JobService
	in          *prompter
	out         io.Writer
	email       string
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	store, err := session.Open(ctx, c.SessionDB)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	apiClient := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	fetcher := scrape.NewFetcher(c.ScrapeRatePerSecond, c.RequestTimeout)

	a := newApp(c, services.NewAuthService(apiClient, store), services.NewJobService(apiClient, fetcher), os.Stdin, os.Stdout)

	email, err := a.authService.Restore(ctx)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("restore session: %w", err)
	}
	a.email = email

	return a, nil
}

func newApp(c *config.Config, as services.AuthService, js services.JobService, in io.Reader, out io.Writer) *App {
	return &App{
		config:      c,
		authService: as,
		jobService:  js,
		in:          &prompter{r: bufio.NewReader(in), w: out},
		out:         out,
	}
}

// Run blocks in the REPL until exit, EOF or ctx cancellation.
func (a *App) Run(ctx context.Context) error {
	defer a.authService.Close()

	fmt.Fprintln(a.out, "Welcome to the job tracker CLI (type 'help' for commands)")
	if err := a.authService.Ping(ctx); err != nil {
		fmt.Fprintf(a.out, "Warning: %s is not reachable: %v\n", a.config.ServerURL, err)
	}
	if a.isLoggedIn() {
		fmt.Fprintf(a.out, "Logged in as %s\n", a.email)
	}

	return runREPL(ctx, a, a.in, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.email != ""
}

func (a *App) status() string {
	if a.email == "" {
		return "jt"
	}
	return fmt.Sprintf("jt (%s)", a.email)
}
