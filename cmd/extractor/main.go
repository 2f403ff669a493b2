package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"dicom-metadata/internal/cli"
	"dicom-metadata/internal/config"
	"dicom-metadata/internal/gui"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Define flags; config supplies the defaults, flags win.
	input := flag.String("input", "", "Input folder containing DICOM files or archives")
	inputShort := flag.String("i", "", "Input folder (shorthand)")

	archives := flag.Bool("archives", cfg.FromArchives, "Search inside .zip archives")

	search := flag.String("search", strings.Join(cfg.SearchTexts, ","), "Archive mode search texts (comma separated)")
	searchShort := flag.String("s", "", "Search texts (shorthand)")

	indicators := flag.String("indicators", strings.Join(cfg.Indicators, ","), "Folder mode indicator words (comma separated)")
	fallback := flag.String("fallback", strings.Join(cfg.FallbackIndicators, ","), "Fallback indicator words (comma separated)")

	output := flag.String("output", cfg.OutputCSV, "Output CSV path")
	outputShort := flag.String("o", "", "Output CSV (shorthand)")

	reportFile := flag.String("report", cfg.ReportFile, "JSON run report path")
	errorLog := flag.String("error-log", cfg.ErrorLog, "Recovered error log path")

	verbose := flag.Bool("verbose", false, "Print every file inspected")
	verboseShort := flag.Bool("v", false, "Verbose (shorthand)")

	help := flag.Bool("help", false, "Show help message")
	helpShort := flag.Bool("h", false, "Help (shorthand)")

	flag.Usage = func() {
		cli.PrintUsage()
	}

	flag.Parse()

	if *help || *helpShort {
		cli.PrintUsage()
		return
	}

	// Merge short and long flags (prefer long if both specified)
	inputFolder := *input
	if inputFolder == "" {
		inputFolder = *inputShort
	}
	if inputFolder == "" {
		inputFolder = cfg.InputFolder
	}

	searchTexts := *search
	if *searchShort != "" {
		searchTexts = *searchShort
	}

	outputCSV := *output
	if *outputShort != "" {
		outputCSV = *outputShort
	}

	// No input folder specified = GUI mode
	if inputFolder == "" {
		app := gui.NewApp(cfg)
		app.Run()
		return
	}

	opts := cli.Options{
		InputFolder:        inputFolder,
		FromArchives:       *archives,
		SearchTexts:        splitList(searchTexts),
		Indicators:         splitList(*indicators),
		FallbackIndicators: splitList(*fallback),
		OutputCSV:          outputCSV,
		ReportFile:         *reportFile,
		ErrorLog:           *errorLog,
		Verbose:            *verbose || *verboseShort,
	}

	if err := cli.Run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// splitList parses a comma separated flag value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
