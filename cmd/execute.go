package cmd

import (
	"os"
	"path/filepath"

	"github.com/ComedicChimera/olive"

	"github.com/ndrsllwngr/goscript/mods"
	"github.com/ndrsllwngr/goscript/report"
)

// GoScriptVersion is the current version of the GoScript tool.
const GoScriptVersion = "0.1.0"

// Execute runs the main `goscript` application.
func Execute() {
	// set up the argument parser and all its commands and arguments
	cli := olive.NewCLI("goscript", "goscript is a tool for managing GoScript projects", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the checker log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	checkCmd := cli.AddSubcommand("check", "parse and type check a project", true)
	checkCmd.AddPrimaryArg("project-path", "the path to the project to check", true)

	cli.AddSubcommand("version", "print the GoScript version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.DisplayErrorMessage("CLI Usage Error", err)
		return
	}

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "check":
		execCheckCommand(subResult, result.Arguments["loglevel"].(string))
	case "version":
		report.DisplayInfoMessage("GoScript Version", GoScriptVersion)
	}
}

// execCheckCommand executes the check subcommand and handles all errors.
func execCheckCommand(result *olive.ArgParseResult, loglevel string) {
	report.InitReporter(convertLogLevel(loglevel))

	// extract CLI data
	projectRelPath, _ := result.PrimaryArg()

	projectPath, err := filepath.Abs(projectRelPath)
	if err != nil {
		report.DisplayErrorMessage("Path Error", err)
		return
	}

	// attempt to load the project
	proj, err := mods.LoadProject(projectPath)
	if err != nil {
		report.DisplayErrorMessage("Project Load Error", err)
		return
	}

	// parse and check the project
	d := NewDriver(proj)
	if err := d.CheckProject(); err != nil {
		report.DisplayFatal(err.Error())
		return
	}

	report.DisplayDiagnostics(d.Errors(), true)
	report.DisplayDiagnostics(d.SoftErrors(), false)
	report.DisplayCheckFinished(d.Errors().Len(), d.SoftErrors().Len())
}

// convertLogLevel converts a log level name from the command line into its
// reporter constant.
func convertLogLevel(loglevel string) int {
	switch loglevel {
	case "silent":
		return report.LogLevelSilent
	case "error":
		return report.LogLevelError
	case "warn":
		return report.LogLevelWarn
	default:
		return report.LogLevelVerbose
	}
}
