package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

// actor is recorded as the author of every change the CLI makes.
var actor = flag.String("actor", "cli", "operator id recorded as the author of changes")

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	for _, c := range commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
