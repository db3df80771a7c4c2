package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dfmderiver/dfm/cmd"
	"github.com/dfmderiver/dfm/pkg/dfm"
)

func rootMain(command *cobra.Command, arguments []string) {
	// Print version information, if requested.
	if rootConfiguration.version {
		fmt.Println(dfm.Version)
		return
	}

	// If no flags were set, then print help information and bail. Arguments
	// can't reach this point on their own; they'd be mistaken for an unknown
	// subcommand and rejected before rootMain ever runs.
	command.Help()
}

var rootCommand = &cobra.Command{
	Use:   "dfm",
	Short: "dfm derives and inspects Deleted Files Manifests",
	Run:   rootMain,
}

var rootConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// version indicates whether or not to show version information and exit.
	version bool
}

func init() {
	// Bind flags to configuration. We manually add help to override the
	// default message, but Cobra still implements it automatically.
	flags := rootCommand.Flags()
	flags.BoolVarP(&rootConfiguration.help, "help", "h", false, "Show help information")
	flags.BoolVarP(&rootConfiguration.version, "version", "V", false, "Show version information")

	// Disable Cobra's command sorting behavior so that subcommands appear in
	// the order they're registered below.
	cobra.EnableCommandSorting = false

	// Disable Cobra's use of mousetrap, which otherwise insists this only be
	// launched from a console on Windows.
	cobra.MousetrapHelpText = ""

	rootCommand.AddCommand(
		deriveCommand,
		inspectCommand,
	)
}

func main() {
	// Relaunch under a terminal compatibility shim if necessary, unless a
	// shell is just asking for completions: relaunching mid-completion would
	// corrupt the output the shell is trying to parse.
	if !cmd.PerformingShellCompletion {
		cmd.HandleTerminalCompatibility()
	}

	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
