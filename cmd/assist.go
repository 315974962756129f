package cmd

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/networth/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd starts the assistant on the current dashboard.
type assistCmd struct {
	dashboardFlags
	model string
}

func (*assistCmd) Name() string { return "assist" }
func (*assistCmd) Synopsis() string {
	return "start an interactive session with the AI assistant"
}
func (*assistCmd) Usage() string {
	return `nw assist [-model <model>] [<question>]

  Starts an interactive session with the assistant. It reads the net worth
  dashboard and can search the web for market news.
  The Gemini API key is read from GEMINI_API_KEY or GOOGLE_API_KEY.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	c.dashboardFlags.SetFlags(f)
	f.StringVar(&c.model, "model", "", "Gemini model, overrides the configuration")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := loadApp()
	if err != nil {
		return fail("Error loading configuration: %v", err)
	}
	d, table, err := c.dashboard(ctx, f)
	if err != nil {
		return fail("Error computing the net worth: %v", err)
	}
	model := c.model
	if model == "" {
		model = a.config.Assistant.Model
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return fail("Error initializing Gemini's client: %v", err)
	}

	analyst := agent.NewAnalyst(model, d, table)
	watcher := agent.NewMarketWatcher(model)
	analyst.Logger, watcher.Logger = a.logger, a.logger
	assistant := agent.New(os.Stdout, os.Stdin, model, analyst, watcher)
	if !*plain {
		if r, err := glamour.NewTermRenderer(glamour.WithAutoStyle()); err == nil {
			assistant.Render = func(s string) string {
				out, err := r.Render(s)
				if err != nil {
					return s
				}
				return out
			}
		}
	}

	if err := assistant.Run(ctx, client, strings.Join(f.Args(), " ")); err != nil {
		return fail("Assistant failed: %v", err)
	}
	return subcommands.ExitSuccess
}
