package cmd

import (
	"context"
	"flag"
	"strings"

	"github.com/etnz/smartbiz/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	topics, _ := docs.GetAllTopics()
	return `sbz topic [<topic>...]

  Shows the documentation of the given topics, '*' for all of them, or the
  list of topics. Topics are ` + strings.Join(topics, ", ") + `.
`
}

func (*topicCmd) SetFlags(*flag.FlagSet) {}

func (*topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{docs.Readme}
	}
	doc, err := docs.GetTopics(topics...)
	if err != nil {
		return fail(err)
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}
