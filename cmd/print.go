package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
)

// stdout receives the documents printed by the commands.
var stdout io.Writer = os.Stdout

// render formats md for the terminal, or returns it as is with -markdown.
func render(md string) string {
	if *rawMarkdown {
		return md
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		log.Debug().Err(err).Msg("cannot create the terminal renderer")
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		log.Debug().Err(err).Msg("cannot render markdown")
		return md
	}
	return out
}

func printMarkdown(md string) {
	fmt.Fprint(stdout, render(md))
}
