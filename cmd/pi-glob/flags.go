// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Explicitly set flags become config overrides; positional args are PATTERN [PATH]

package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/mauromedda/pi-glob/internal/config"
)

const usage = `usage: pi-glob [flags] PATTERN [PATH]
       pi-glob --serve [flags]

Find files matching a glob pattern, newest first.

Flags:
`

type cliArgs struct {
	configFile string
	maxResults int
	workers    int
	timeout    time.Duration
	format     string
	noFollow   bool
	verbose    bool
	version    bool
	serve      bool
	parallel   int
	showConfig bool

	// set records which flags appeared on the command line.
	set  map[string]bool
	rest []string
}

func parseFlags(argv []string, stderr io.Writer) (cliArgs, error) {
	var args cliArgs

	fs := flag.NewFlagSet("pi-glob", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	fs.StringVar(&args.configFile, "config", "", "Config file (replaces ~/.pi-glob and .pi-glob config files)")
	fs.IntVar(&args.maxResults, "max-results", 0, "Maximum matches to return (default 100)")
	fs.IntVar(&args.workers, "workers", 0, "Directories read concurrently (default NumCPU)")
	fs.DurationVar(&args.timeout, "timeout", 0, "Abort a search after this long (e.g. 5s)")
	fs.StringVar(&args.format, "format", "", "Output format: text, json, or yaml")
	fs.BoolVar(&args.noFollow, "no-follow", false, "Do not follow symbolic links")
	fs.BoolVar(&args.verbose, "verbose", false, "Log debug output and tool events to stderr")
	fs.BoolVar(&args.version, "version", false, "Show version and exit")
	fs.BoolVar(&args.serve, "serve", false, "Serve JSONL tool requests on stdin, responses on stdout")
	fs.IntVar(&args.parallel, "parallel", 1, "Requests handled concurrently in --serve mode")
	fs.BoolVar(&args.showConfig, "show-config", false, "Print the effective configuration and exit")

	if err := fs.Parse(argv); err != nil {
		return cliArgs{}, err
	}

	args.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { args.set[f.Name] = true })
	args.rest = fs.Args()
	return args, nil
}

// overrides maps explicitly set flags onto config keys.
func (a cliArgs) overrides() map[string]any {
	out := make(map[string]any)
	if a.set["max-results"] {
		out[config.KeyMaxResults] = a.maxResults
	}
	if a.set["workers"] {
		out[config.KeyWorkers] = a.workers
	}
	if a.set["timeout"] {
		out[config.KeyTimeout] = a.timeout
	}
	if a.set["format"] {
		out[config.KeyFormat] = a.format
	}
	if a.noFollow {
		out[config.KeyFollowSymlinks] = false
	}
	if a.verbose {
		out[config.KeyLogLevel] = "debug"
	}
	return out
}

// remaining returns the non-flag command-line arguments.
func (a cliArgs) remaining() []string {
	return a.rest
}
