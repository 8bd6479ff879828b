package main

import (
	"fmt"
	"log/slog"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	command := os.Args[1]
	switch command {
	case "key":
		err = keyCommand(os.Args[2:])
	case "taxid":
		err = taxIDCommand(os.Args[2:])
	case "contingency":
		err = contingencyCommand(os.Args[2:])
	case "certificate":
		err = certificateCommand(os.Args[2:])
	case "init":
		err = initCommand(os.Args[2:])
	case "version":
		versionCommand()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", command, err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "\nCommands:\n")
	fmt.Fprintf(os.Stderr, "  key          Build, parse or validate access keys\n")
	fmt.Fprintf(os.Stderr, "  taxid        Validate and format CNPJ/CPF values\n")
	fmt.Fprintf(os.Stderr, "  contingency  Activate, deactivate or apply contingency\n")
	fmt.Fprintf(os.Stderr, "  certificate  Show identity and expiry of a PEM certificate\n")
	fmt.Fprintf(os.Stderr, "  init         Write a configuration file\n")
	fmt.Fprintf(os.Stderr, "  version      Show version information\n")
	fmt.Fprintf(os.Stderr, "\nRun '%s <command> -h' for help on a specific command.\n", os.Args[0])
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
