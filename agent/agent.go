// Package agent asks Gemini about the books.
//
// Insights produces a one-shot business analysis of a snapshot. Agent runs an
// interactive session where a facilitator dispatches questions to experts,
// the Analyst reading the ledger through function tools.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent is the AI assistant that handles the chat session.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	Facilitator *Expert
	Experts     []*Expert
	// Render formats the answers, printed as is when nil.
	Render func(markdown string) string
}

// New creates a new Agent writing to w and reading the user's questions from
// r.
func New(w io.Writer, r io.Reader, model string, experts ...*Expert) *Agent {
	return &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		Experts:     experts,
		Facilitator: newFacilitator(model, experts...),
	}
}

// Start opens the chats of the facilitator and every expert.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return err
		}
	}
	return a.Facilitator.Start(ctx, client)
}

const prompt = "assist> "

// Run starts the interactive session. prompts are asked first, as if typed
// by the user. The session ends on "bye" or at the end of input.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to the SmartBiz assistant. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		var input string

		// Flush prompts from the list and then ask for the user.
		if len(prompts) > 0 {
			input, prompts = strings.TrimSpace(prompts[0]), prompts[1:]
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err == io.EOF && strings.TrimSpace(input) == "" {
				return nil // Ctrl+D
			}
			if err != nil && err != io.EOF {
				return err
			}
		}

		input = strings.TrimSpace(input)
		switch input {
		case "":
			continue
		case "bye":
			return nil
		}

		content, err := a.Facilitator.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		answer := text(content)
		if a.Render != nil {
			answer = a.Render(answer)
		}
		fmt.Fprintln(a.w, answer)
	}
}

// text joins the text parts of c.
func text(c *genai.Content) string {
	var b strings.Builder
	for _, p := range c.Parts {
		if p.Text != "" && !p.Thought {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}
