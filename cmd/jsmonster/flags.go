package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
)

// AppFlags holds the parsed command line.
type AppFlags struct {
	URL         string
	ListFile    string
	LocalFile   string
	OutputFile  string
	ForceJSON   bool
	Concurrent  int
	Delay       float64
	Timeout     int
	Depth       int
	NoEndpoints bool
	NoSecrets   bool
	NoURLs      bool
	Verbose     bool
	Store       bool
	ConfigFile  string
	ShowVersion bool
	// Names of flags given explicitly; only these override the config file.
	set         map[string]bool
}

// IsSet reports whether the flag (long name) was given.
func (f AppFlags) IsSet(name string) bool {
	return f.set[name]
}

var aliases = map[string]string{
	"u": "url",
	"l": "list",
	"f": "file",
	"o": "output",
	"c": "concurrent",
	"v": "verbose",
}

// ParseFlags parses args. Exactly one of --url, --list or --file is required.
func ParseFlags(args []string, output io.Writer) (AppFlags, error) {
	var flags AppFlags
	fs := flag.NewFlagSet("jsmonster", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&flags.URL, "url", "", "Single URL to analyze (web page or .js file)")
	fs.StringVar(&flags.URL, "u", "", "Alias for -url")
	fs.StringVar(&flags.ListFile, "list", "", "File containing URLs, one per line")
	fs.StringVar(&flags.ListFile, "l", "", "Alias for -list")
	fs.StringVar(&flags.LocalFile, "file", "", "Local JavaScript file to analyze")
	fs.StringVar(&flags.LocalFile, "f", "", "Alias for -file")
	fs.StringVar(&flags.OutputFile, "output", "", "Report file; .json, .parquet or HTML by extension")
	fs.StringVar(&flags.OutputFile, "o", "", "Alias for -output")
	fs.BoolVar(&flags.ForceJSON, "json", false, "Force JSON output format")
	fs.IntVar(&flags.Concurrent, "concurrent", 10, "Maximum concurrent requests")
	fs.IntVar(&flags.Concurrent, "c", 10, "Alias for -concurrent")
	fs.Float64Var(&flags.Delay, "delay", 0.5, "Delay held after each request, in seconds")
	fs.IntVar(&flags.Timeout, "timeout", 30, "Request timeout in seconds")
	fs.IntVar(&flags.Depth, "depth", 1, "Crawl depth; values above 1 follow same-site links")
	fs.BoolVar(&flags.NoEndpoints, "no-endpoints", false, "Disable endpoint extraction")
	fs.BoolVar(&flags.NoSecrets, "no-secrets", false, "Disable secret and API key extraction")
	fs.BoolVar(&flags.NoURLs, "no-urls", false, "Disable URL extraction")
	fs.BoolVar(&flags.Verbose, "verbose", false, "Print all findings and errors")
	fs.BoolVar(&flags.Verbose, "v", false, "Alias for -verbose")
	fs.BoolVar(&flags.Store, "store", false, "Append findings to the Parquet database in reporter_config.parquet_dir")
	fs.StringVar(&flags.ConfigFile, "config", "", "Path to a YAML/JSON configuration file")
	fs.BoolVar(&flags.ShowVersion, "version", false, "Print the version and exit")

	if err := fs.Parse(args); err != nil {
		return flags, err
	}

	flags.set = make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) {
		name := fl.Name
		if long, ok := aliases[name]; ok {
			name = long
		}
		flags.set[name] = true
	})

	if flags.ShowVersion {
		return flags, nil
	}

	inputs := 0
	for _, in := range []string{flags.URL, flags.ListFile, flags.LocalFile} {
		if in != "" {
			inputs++
		}
	}
	switch {
	case inputs == 0:
		return flags, errors.New("provide -u URL, -l URL_LIST or -f FILE")
	case inputs > 1:
		return flags, errors.New("-u, -l and -f are mutually exclusive")
	}

	if flags.Concurrent < 1 {
		return flags, fmt.Errorf("-concurrent must be at least 1, got %d", flags.Concurrent)
	}
	if flags.Delay < 0 {
		return flags, fmt.Errorf("-delay must not be negative, got %v", flags.Delay)
	}
	if flags.Timeout < 1 {
		return flags, fmt.Errorf("-timeout must be at least 1, got %d", flags.Timeout)
	}
	return flags, nil
}
