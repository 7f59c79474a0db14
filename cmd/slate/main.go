// Command slate is the Slate compiler front end CLI.
//
//	slate build main.lang        compile a file (and its imports) to IR text
//	slate check main.lang        parse only, report the first error
//	slate fmt main.lang          re-emit a file from its AST
//
// With no file argument, build falls back to the entry point of a slate.toml
// project file in the working directory.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	cli "github.com/urfave/cli/v2"

	"github.com/slate-lang/slate/driver"
)

func main() {
	app := &cli.App{
		Name:  "slate",
		Usage: "Slate compiler front end",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			buildCommand(),
			checkCommand(),
			fmtCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the console logger shared by all commands.
func newLogger(cliCtx *cli.Context) zerolog.Logger {
	level := zerolog.InfoLevel
	if cliCtx.Bool("verbose") {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.NewConsoleWriter()).
		Level(level).
		With().Timestamp().Logger()
}

func buildCommand() *cli.Command {
	return &cli.Command{
		Name:      "build",
		Usage:     "Compile a source file and its imports to IR text.",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "output",
				Usage: "write IR to `FILE` instead of stdout",
			},
			&cli.StringFlag{
				Name:  "module",
				Usage: "name of the emitted module (default: entry file base name)",
			},
		},
		Action: runBuild,
	}
}

func runBuild(cliCtx *cli.Context) error {
	logger := newLogger(cliCtx).With().Str("command", "build").Logger()

	entry := cliCtx.Args().First()
	output := cliCtx.String("output")
	modName := cliCtx.String("module")

	// A slate.toml in the working directory supplies defaults for anything
	// not given on the command line.
	if cfg, err := driver.LoadConfigIfPresent(); err != nil {
		return err
	} else if cfg != nil {
		if entry == "" {
			entry = cfg.Entry
		}
		if output == "" {
			output = cfg.Output
		}
		if modName == "" {
			modName = cfg.Module
		}
	}
	if entry == "" {
		return fmt.Errorf("no input file (pass one or add entry to %s)", driver.DefaultConfigFile)
	}
	if modName == "" {
		modName = strings.TrimSuffix(filepath.Base(entry), filepath.Ext(entry))
	}

	mod, err := driver.New(logger).Compile(entry, modName)
	if err != nil {
		logger.Error().Err(err).Msg("build failed")
		return cli.Exit("", 1)
	}

	if output == "" {
		fmt.Print(mod.String())
		return nil
	}
	if err := os.WriteFile(output, []byte(mod.String()), 0o644); err != nil {
		return err
	}
	logger.Info().Str("output", output).Msg("wrote IR")
	return nil
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Parse a source file and report the first error.",
		ArgsUsage: "file",
		Action: func(cliCtx *cli.Context) error {
			logger := newLogger(cliCtx).With().Str("command", "check").Logger()
			path := cliCtx.Args().First()
			if path == "" {
				return fmt.Errorf("no input file")
			}
			if _, err := driver.New(logger).ParseFile(path); err != nil {
				logger.Error().Err(err).Msg("check failed")
				return cli.Exit("", 1)
			}
			logger.Info().Str("file", path).Msg("ok")
			return nil
		},
	}
}

func fmtCommand() *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "Parse a source file and re-emit it from the AST.",
		ArgsUsage: "file",
		Action: func(cliCtx *cli.Context) error {
			logger := newLogger(cliCtx).With().Str("command", "fmt").Logger()
			path := cliCtx.Args().First()
			if path == "" {
				return fmt.Errorf("no input file")
			}
			prog, err := driver.New(logger).ParseFile(path)
			if err != nil {
				logger.Error().Err(err).Msg("fmt failed")
				return cli.Exit("", 1)
			}
			fmt.Print(prog.String())
			return nil
		},
	}
}
