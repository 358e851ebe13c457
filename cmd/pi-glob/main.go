// ABOUTME: CLI entry point for pi-glob
// ABOUTME: Parses flags, loads config, builds the tool registry, dispatches to print or RPC mode

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/mauromedda/pi-glob/internal/config"
	"github.com/mauromedda/pi-glob/internal/log"
	"github.com/mauromedda/pi-glob/internal/mode/print"
	"github.com/mauromedda/pi-glob/internal/mode/rpc"
	"github.com/mauromedda/pi-glob/internal/render"
	"github.com/mauromedda/pi-glob/internal/tools"
	"github.com/mauromedda/pi-glob/internal/types"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// exitToolError is the status when the search ran but reported an error.
const exitToolError = 2

type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func main() {
	args, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(1)
	}

	if args.version {
		fmt.Printf("pi-glob %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code, err := run(ctx, args, streams{in: os.Stdin, out: os.Stdout, err: os.Stderr})
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(code)
}

func run(ctx context.Context, args cliArgs, stdio streams) (int, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return 1, fmt.Errorf("getting working directory: %w", err)
	}

	cfg, err := config.Load(config.LoadOptions{
		Workspace: cwd,
		File:      args.configFile,
		Overrides: args.overrides(),
	})
	if err != nil {
		return 1, err
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return 1, err
	}
	logger := log.New(stdio.err, level)
	logger.Debug("config sources: %v", cfg.Sources)

	if args.showConfig {
		fmt.Fprint(stdio.out, config.Explain(cfg))
		return 0, nil
	}

	reg := tools.NewRegistry(cfg, logger)
	if args.verbose {
		reg.OnEvent = print.EventPrinter(stdio.err)
	}

	if args.serve {
		if len(args.remaining()) > 0 {
			return 1, errors.New("--serve takes no positional arguments")
		}
		logger.Info("serving tool requests on stdin (workspace %s)", cfg.Workspace)
		return 0, rpc.NewServer(stdio.in, stdio.out, reg, args.parallel, logger).Run(ctx)
	}

	rest := args.remaining()
	if len(rest) < 1 || len(rest) > 2 {
		return 1, errors.New("usage: pi-glob [flags] PATTERN [PATH]")
	}
	action := types.GlobAction{Pattern: rest[0]}
	if len(rest) == 2 {
		action.Path = rest[1]
	}

	color, width := terminalInfo(stdio.out)
	renderer, err := render.New(render.Options{
		Format: render.Format(cfg.Format),
		Color:  color,
		Width:  width,
	})
	if err != nil {
		return 1, err
	}

	resp, err := print.Run(ctx, reg, print.Config{Renderer: renderer, Out: stdio.out},
		types.NewGlobRequest(uuid.NewString(), action))
	if err != nil {
		return 1, err
	}
	if resp.Error != nil {
		return exitToolError, nil
	}
	return 0, nil
}

// terminalInfo reports whether w is a color-capable terminal and its width.
func terminalInfo(w io.Writer) (color bool, width int) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false, 0
	}
	if cols, _, err := term.GetSize(int(f.Fd())); err == nil {
		width = cols
	}
	return os.Getenv("NO_COLOR") == "", width
}
