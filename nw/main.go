// Command nw reports the net worth of a snapshot of positions.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/networth/cmd"
	"github.com/google/subcommands"
)

func main() {
	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	// Exits when invoked by the shell for completion.
	cmd.Completion(flag.CommandLine, cmd.Commands).Complete(name)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
