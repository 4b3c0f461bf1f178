// Package cli contains the command line interface for dragon.
//
// # Usage
//
//	dragon levels                       # list the catalog
//	dragon levels 3-4                   # show one board
//	dragon play -l 1-1 plan.txt         # play a battle plan
//	dragon play -l 2-1 --frames -       # read the plan from stdin
//	dragon check plan.txt               # syntax check only
//	dragon fmt -w plan.txt              # reformat in place
//	dragon solve                        # play every reference solution
//	dragon repl -l 1-3                  # interactive editor and runner
//	dragon serve --addr :8080           # HTTP API
//	dragon history --limit 10           # recorded plays
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user configuration
// directory. The file is a flat mapping of flag names to values and can be
// generated from the current flags with "dragon init". Command-line flags
// override the file.
//
// Extra level catalogs are loaded after the built-in levels from, in order:
// levels.yaml in the configuration directory, each file in the DRAGON_CATALOG
// path list, and each --catalog flag.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//   - --log-file: Append log records to a file instead of stderr
//   - --log-quiet: Silence one or more components (cli, level, lang, game,
//     store, server, repl)
//
// DRAGON_LOG_LEVEL and DRAGON_LOG_FORMAT set the level and format when the
// flags are absent. Every record carries the component that wrote it.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o dragon .
//
// Such builds accept two more flags:
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/dragon/pprof)
package cli
