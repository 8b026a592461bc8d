package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/fifotax/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "prints a topic of the user manual" }
func (*topicCmd) Usage() string {
	return `cgt topic [<topic>...]

  Prints the given topics of the user manual, or the list of topics.
  Use '*' to print every topic.
`
}

func (*topicCmd) SetFlags(f *flag.FlagSet) {}

func (*topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		printMarkdown(docs.Index())
		return subcommands.ExitSuccess
	}
	for _, topic := range f.Args() {
		doc, err := docs.Topic(topic)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(doc)
	}
	return subcommands.ExitSuccess
}
