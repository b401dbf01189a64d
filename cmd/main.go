// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"cyberforge-scan/internal/config"
	"cyberforge-scan/internal/console"
	"cyberforge-scan/internal/core"
	"cyberforge-scan/internal/detector"
	"cyberforge-scan/internal/extract"
	"cyberforge-scan/internal/formatters"
	"cyberforge-scan/internal/help"
	"cyberforge-scan/internal/observability"
	"cyberforge-scan/internal/paths"
	"cyberforge-scan/internal/version"
)

// Exit codes
const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

// debugEnv enables debug output without the --debug flag
const debugEnv = "CYBERFORGE_DEBUG"

// cliFlags holds command line flag values
type cliFlags struct {
	inputFile    string
	configFile   string
	profileName  string
	listProfiles bool
	keywords     string
	outputFile   string
	outputFormat string
	noColor      bool
	quiet        bool
	debug        bool
	showVersion  bool
	showHelp     bool
}

// finalConfiguration holds resolved configuration values
type finalConfiguration struct {
	format       string
	outputFile   string
	noColor      bool
	quiet        bool
	debug        bool
	keywords     []string
	extensions   []string
	maxLineBytes int
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("cyberforge-scan", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var flags cliFlags
	fs.StringVar(&flags.inputFile, "file", "", "Path to the log or text file to analyse")
	fs.StringVar(&flags.configFile, "config", "", "Path to configuration file (YAML)")
	fs.StringVar(&flags.profileName, "profile", "", "Profile name to use from config file")
	fs.BoolVar(&flags.listProfiles, "list-profiles", false, "List available profiles and exit")
	fs.StringVar(&flags.keywords, "keywords", "", "Comma-separated alert keywords, replacing the configured list")
	fs.StringVar(&flags.outputFile, "output", "", "Report file, overwritten on each run (default: Extraction_Analyse.txt)")
	fs.StringVar(&flags.outputFormat, "format", "", "Report format: "+strings.Join(formatters.List(), ", ")+" (default: text)")
	fs.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&flags.quiet, "quiet", false, "Only print errors and the report path")
	fs.BoolVar(&flags.debug, "debug", false, "Print ingestion steps and JSON timings to stderr")
	fs.BoolVar(&flags.showVersion, "version", false, "Show version information")
	fs.BoolVar(&flags.showHelp, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			newHelpSystem(stdout, true).ShowGeneralHelp()
			return exitOK
		}
		return exitUsage
	}

	if flags.showVersion {
		fmt.Fprintln(stdout, version.Info())
		return exitOK
	}

	if flags.showHelp {
		return showHelp(fs.Args(), stdout, colorDisabled(flags.noColor, stdout))
	}

	var mainDebugObs *observability.DebugObserver
	if flags.debug || os.Getenv(debugEnv) != "" {
		mainDebugObs = observability.NewDebugObserver(stderr)
		mainDebugObs.LogDetail("main", fmt.Sprintf("Command line arguments: %v", args))
	}

	configPath := flags.configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	cfg := config.LoadConfigOrDefault(configPath, func(err error) {
		fmt.Fprintf(stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(stderr, "Using default configuration\n")
	})
	if mainDebugObs != nil {
		mainDebugObs.LogDetail("main", fmt.Sprintf("Configuration file: %q", configPath))
	}

	if flags.listProfiles {
		printProfiles(cfg, stdout)
		return exitOK
	}

	settings, err := cfg.Resolve(flags.profileName)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	final := resolveConfiguration(fs, settings, &flags)
	if os.Getenv(debugEnv) != "" {
		final.debug = true
	}
	if _, ok := formatters.Get(final.format); !ok {
		fmt.Fprintf(stderr, "Error: unsupported format '%s' (supported: %s)\n",
			final.format, strings.Join(formatters.List(), ", "))
		return exitUsage
	}

	out := console.New(stdout, stderr, console.Options{
		NoColor: colorDisabled(final.noColor, stdout),
		Quiet:   final.quiet,
	})

	inputFile := flags.inputFile
	if inputFile == "" && len(fs.Args()) > 0 {
		inputFile = fs.Args()[0]
	}
	if inputFile == "" {
		if !isInteractive(stdin) {
			fmt.Fprintln(stderr, "Error: --file is required when input is not a terminal")
			fs.Usage()
			return exitUsage
		}
		out.Banner()
		inputFile, err = promptPath(stdin, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "✗ Error: %v\n", err)
			return exitUsage
		}
	} else {
		out.Banner()
	}
	inputFile = paths.CleanInputPath(inputFile)
	if inputFile == "" {
		fmt.Fprintln(stderr, "✗ Error: empty path")
		return exitUsage
	}

	observer := observability.NewNopObserver()
	if final.debug {
		if mainDebugObs == nil {
			mainDebugObs = observability.NewDebugObserver(stderr)
		}
		observer = mainDebugObs.StandardObserver
		mainDebugObs.LogDetail("main", "Run ID: "+observer.RunID())
		mainDebugObs.LogDetail("main", fmt.Sprintf("Format: %s, output: %s, keywords: %d", final.format, final.outputFile, len(final.keywords)))
	}

	out.StartScan(inputFile)
	result, err := core.ScanFile(core.ScanConfig{
		FilePath:     inputFile,
		Keywords:     final.keywords,
		Extensions:   final.extensions,
		OutputFile:   final.outputFile,
		Format:       final.format,
		MaxLineBytes: final.maxLineBytes,
		Observer:     observer,
		Hooks: core.ScanHooks{
			OnWarning: func(w *core.ScanError) { out.Warning(w, final.extensions) },
			OnAlert:   out.Alert,
		},
	})
	if err != nil {
		out.Error(err)
		return exitFatal
	}
	if result.ReportErr != nil {
		out.Error(result.ReportErr)
	}

	out.Statistics(result.Report, result.ReportPath)
	out.Results(result.Report)
	return exitOK
}

// resolveConfiguration applies command line flags over the resolved config settings
func resolveConfiguration(fs *flag.FlagSet, settings config.Settings, flags *cliFlags) *finalConfiguration {
	final := &finalConfiguration{
		format:       settings.Format,
		outputFile:   settings.OutputFile,
		noColor:      settings.NoColor,
		quiet:        settings.Quiet,
		debug:        settings.Debug,
		extensions:   settings.Extensions,
		maxLineBytes: settings.MaxLineBytes,
	}
	if final.format == "" {
		final.format = "text"
	}
	if len(final.extensions) == 0 {
		final.extensions = core.DefaultExtensions
	}

	if isFlagSet(fs, "format") && flags.outputFormat != "" {
		final.format = flags.outputFormat
	}
	if isFlagSet(fs, "no-color") {
		final.noColor = flags.noColor
	}
	if isFlagSet(fs, "quiet") {
		final.quiet = flags.quiet
	}
	if isFlagSet(fs, "debug") {
		final.debug = flags.debug
	}

	// --keywords replaces both the base list and extra_keywords
	if isFlagSet(fs, "keywords") {
		final.keywords = detector.ParseKeywordList(flags.keywords)
	} else {
		final.keywords = settings.EffectiveKeywords()
	}

	switch {
	case isFlagSet(fs, "output"):
		final.outputFile = flags.outputFile
	case final.outputFile == "" || final.outputFile == formatters.DefaultReportFile:
		final.outputFile = formatters.ReportFileFor(final.format)
	}

	return final
}

// printProfiles lists the available profiles
func printProfiles(cfg *config.Config, stdout io.Writer) {
	profiles := cfg.ListProfiles()
	if len(profiles) == 0 {
		fmt.Fprintln(stdout, "No profiles defined in configuration file.")
		return
	}
	fmt.Fprintln(stdout, "Available profiles:")
	for _, name := range profiles {
		profile := cfg.GetProfile(name)
		if profile != nil && profile.Description != "" {
			fmt.Fprintf(stdout, "  - %s: %s\n", name, profile.Description)
		} else {
			fmt.Fprintf(stdout, "  - %s\n", name)
		}
	}
}

// showHelp prints general help, or the topic named by the first argument
func showHelp(args []string, stdout io.Writer, noColor bool) int {
	h := newHelpSystem(stdout, noColor)
	if len(args) == 0 {
		h.ShowGeneralHelp()
		return exitOK
	}

	switch topic := strings.ToLower(args[0]); topic {
	case "fields":
		h.ShowFieldsHelp()
	case "keywords":
		h.ShowKeywordsHelp(detector.DefaultKeywordList())
	default:
		if !h.ShowFieldHelp(topic) {
			return exitUsage
		}
	}
	return exitOK
}

var fieldNotes = map[detector.Category][]string{
	detector.IPs:   {"Candidates are kept only when all four octets are integers in 0-255"},
	detector.Times: {"Hours up to 29 are accepted; values are not checked against a clock"},
	detector.Dates: {"Day and month ranges are not validated (2024-13-45 is reported)"},
	detector.URLs:  {"Only http and https links are matched"},
}

var fieldExamples = map[detector.Category][]string{
	detector.Emails: {"admin@example.com"},
	detector.IPs:    {"192.168.1.10", "0.0.0.0"},
	detector.Times:  {"14:23", "14:23:10", "9:05 pm"},
	detector.Dates:  {"2024-01-05", "05/01/2024"},
	detector.URLs:   {"https://example.com/x"},
}

// newHelpSystem registers every extracted field with a help system
func newHelpSystem(stdout io.Writer, noColor bool) *help.System {
	h := help.NewSystem(stdout, noColor)
	h.SetFormats(formatters.GetSupportedFormats())
	extractor := extract.NewExtractor()
	for _, c := range detector.Categories {
		h.RegisterField(help.FieldInfo{
			Key:         c.Key(),
			Label:       c.Label(),
			Description: extractor.Describe(c),
			Pattern:     extractor.Pattern(c),
			Notes:       fieldNotes[c],
			Examples:    fieldExamples[c],
		})
	}
	return h
}

// promptPath asks for the file to analyse on stdin
func promptPath(stdin io.Reader, stdout io.Writer) (string, error) {
	fmt.Fprintln(stdout, "Tip: right-click the file in your file manager and copy its path.")
	fmt.Fprint(stdout, "Path of the file to analyse: ")

	reader := bufio.NewReader(stdin)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading path: %w", err)
	}
	path := paths.CleanInputPath(line)
	if path == "" {
		return "", errors.New("empty path")
	}
	return path, nil
}

// isFlagSet reports whether the named flag was given on the command line
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isInteractive reports whether r is a terminal the user can type into
func isInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && console.IsTerminal(f)
}

// colorDisabled decides colors for w; anything but a terminal gets plain text
func colorDisabled(noColor bool, w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return true
	}
	return console.ColorDisabled(noColor, f)
}
