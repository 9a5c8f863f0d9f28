// Command epomakerctl is a thin Kong-based front end over the epomakerctl
// driver library: it parses argv, wires up logging, and dispatches to the
// subcommand that builds and sends the requested report sequence. None of
// the core library's testable properties depend on this package — it is
// scaffolding over it, per SPEC_FULL.md §6.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/epomaker-go/epomakerctl/internal/configpaths"
	"github.com/epomaker-go/epomakerctl/internal/logging"
)

func main() {
	userConfig := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.CandidatePaths(userConfig)

	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("epomakerctl"),
		kong.Description("Host-side driver for the Epomaker RT100 keyboard's LCD and per-key RGB lighting."),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "epomakerctl: internal error building parser:", err)
		os.Exit(2)
	}

	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	logger, closers, err := logging.Setup(cli.LogLevel, cli.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "epomakerctl: failed to set up logging:", err)
		os.Exit(2)
	}
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()

	raw, rawCloser := rawLoggerFor(cli.RawLog, cli.LogLevel)
	if rawCloser != nil {
		defer rawCloser.Close()
	}

	kctx.Bind(logger)
	kctx.Bind(&cli.Globals)
	kctx.BindTo(raw, (*logging.RawLogger)(nil))

	err = kctx.Run()
	kctx.FatalIfErrorf(err)
}

// findUserConfig scans argv for an explicit --config path before Kong has
// parsed anything, since the config loader must be wired in before parsing.
func findUserConfig(args []string) string {
	for i, a := range args {
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("EPOMAKERCTL_CONFIG"); v != "" {
		return v
	}
	return ""
}

// rawLoggerFor opens the raw HID trace file if requested, or routes it to
// stdout when log-level is trace, matching the teacher's own rule for when
// to surface a bidirectional wire trace without a dedicated flag.
func rawLoggerFor(path, level string) (logging.RawLogger, *os.File) {
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			return logging.NewRaw(nil), nil
		}
		return logging.NewRaw(f), f
	}
	if level == "trace" {
		return logging.NewRaw(os.Stdout), nil
	}
	return logging.NewRaw(nil), nil
}
