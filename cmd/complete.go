package cmd

import (
	"flag"
	"strings"

	"github.com/etnz/networth/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the commands and their flags for shell completion.
func Completion(root *flag.FlagSet, commands []subcommands.Command) *complete.Command {
	c := &complete.Command{
		Sub:   make(map[string]*complete.Command, len(commands)),
		Flags: flagPredictors(root),
	}
	for _, cmd := range commands {
		fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(fs)
		sub := &complete.Command{Flags: flagPredictors(fs)}
		switch cmd.Name() {
		case "topic":
			topics, _ := docs.GetAllTopics()
			sub.Args = predict.Set(topics)
		case "delete":
			sub.Args = predict.Something
		}
		c.Sub[cmd.Name()] = sub
	}
	return c
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	m := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		switch {
		case isBoolFlag(f):
			m[f.Name] = predict.Nothing
		case f.Name == "config":
			m[f.Name] = predict.Files("*.toml")
		case f.Name == "snapshot" || f.Name == "drafts":
			m[f.Name] = predict.Files("*.json")
		case f.Name == "type":
			m[f.Name] = predict.Set(draftTypes)
		case strings.HasSuffix(f.Name, "currency"):
			m[f.Name] = predict.Set{"EUR", "USD", "GBP", "CHF", "JPY"}
		default:
			m[f.Name] = predict.Something
		}
	})
	return m
}

func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}
