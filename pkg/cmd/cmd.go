package cmd

import (
	"flag"
	"fmt"
	"os"
)

// DieWithUsage is a utility that assumes usage of the flag library. It prints
// a usage line, the flag arguments, and then exits.
func DieWithUsage() {
	DieWithFlagSetUsage(flag.CommandLine, "")
}

// DieWithFlagSetUsage is DieWithUsage for a subcommand's flag set. synopsis
// follows the program name on the usage line.
func DieWithFlagSetUsage(fs *flag.FlagSet, synopsis string) {
	fmt.Fprintf(os.Stderr, "Usage: %s %s\n", os.Args[0], synopsis)
	fs.SetOutput(os.Stderr)
	fs.PrintDefaults()
	os.Exit(1)
}
