package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/hooks-runtime/runtime"
	"github.com/wippyai/hooks-runtime/scheduler"
)

func main() {
	var (
		tick    = flag.Duration("tick", time.Second, "counter tick interval")
		logPath = flag.String("log", "", "write debug logs to this file")
	)
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "counter: stdout is not a terminal")
		fmt.Fprintln(os.Stderr, "Usage: counter [-tick 1s] [-log debug.log]")
		os.Exit(1)
	}

	if *logPath != "" {
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{*logPath}
		logger, err := cfg.Build()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		runtime.SetLogger(logger)
		scheduler.SetLogger(logger)
	}

	if err := runTUI(*tick); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
