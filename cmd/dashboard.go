package cmd

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/etnz/smartbiz/agent"
	"github.com/etnz/smartbiz/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

type dashboardCmd struct{}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "display the overview of the shop" }
func (*dashboardCmd) Usage() string {
	return `sbz dashboard

  Displays the sales and purchase totals, the gross margin, the cash received
  and paid, the debts, the stock alerts and the latest transactions.
`
}

func (*dashboardCmd) SetFlags(*flag.FlagSet) {}

func (*dashboardCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()
	printMarkdown(renderer.DashboardMarkdown(w.ledger.Dashboard(), env.Currency))
	return subcommands.ExitSuccess
}

type insightCmd struct{}

func (*insightCmd) Name() string     { return "insight" }
func (*insightCmd) Synopsis() string { return "ask Gemini for a short analysis of the business" }
func (*insightCmd) Usage() string {
	return `sbz insight

  Sends the stock levels, the latest transactions and the outstanding debts
  to Gemini and prints its analysis. Needs GEMINI_API_KEY.
`
}

func (*insightCmd) SetFlags(*flag.FlagSet) {}

func (*insightCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	var g agent.Generator
	client, err := agent.NewClient(ctx, env.APIKey)
	if err != nil {
		log.Warn().Err(err).Msg("no AI client")
	} else {
		g = client.Models
	}
	printMarkdown(agent.Insights(ctx, g, env.Model, w.ledger.Snapshot()))
	return subcommands.ExitSuccess
}

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `sbz assist [<question>]

  Starts an interactive session with the AI assistant. The assistant reads
  the books, never changes them. An optional first question can be given
  as arguments. Type 'bye' to exit.
`
}

func (*assistCmd) SetFlags(*flag.FlagSet) {}

func (*assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	client, err := agent.NewClient(ctx, env.APIKey)
	if err != nil {
		return fail(err)
	}
	a := agent.New(os.Stdout, os.Stdin, env.Model,
		agent.NewAnalyst(w.ledger, env.Model, env.Currency),
		agent.NewMarket(env.Model),
	)
	a.Render = render
	if err := a.Run(ctx, client, strings.Join(f.Args(), " ")); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
