// Command mcserver is the process entry point: flag parsing, config
// loading, and starting the server's accept loop. This is "trivial launch
// glue" per SPEC_FULL.md §1 — everything that matters (framing, codec,
// state machine, play session driver) lives in the packages it wires
// together.
//
// Grounded on dmitrymodder-minewire/main.go's flag-then-config-then-listen
// shape, including its -v/--version convenience flag.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-mclib/mcserver/config"
	"github.com/go-mclib/mcserver/mclog"
	"github.com/go-mclib/mcserver/server"
)

// version is the launcher's own reported version, distinct from
// config.Config.Version (the protocol-facing name embedded in status JSON).
const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("mcserver", flag.ContinueOnError)
	configPath := fs.String("config", "server.yaml", "path to the YAML configuration file")
	hostOverride := fs.String("host", "", "override the configured bind host")
	portOverride := fs.Int("port", 0, "override the configured bind port")
	showVersion := fs.Bool("version", false, "print the launcher version and exit")
	verbose := fs.Bool("debug", false, "enable debug-level logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Printf("mcserver %s\n", version)
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mcserver: %v\n", err)
		return 1
	}
	if *hostOverride != "" {
		cfg.Host = *hostOverride
	}
	if *portOverride != 0 {
		cfg.Port = uint16(*portOverride)
	}

	logger := mclog.NewStdLogger(*verbose)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := server.New(cfg, logger)
	if err := srv.ListenAndServe(ctx); err != nil {
		mclog.Errorf(logger, "main", "%v", err)
		return 1
	}
	return 0
}
