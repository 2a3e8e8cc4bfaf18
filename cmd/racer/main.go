package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/phildawes/racer/core"
	"github.com/phildawes/racer/internal/rconfig"
	"github.com/phildawes/racer/manifest"
	"github.com/phildawes/racer/query"
	"github.com/phildawes/racer/resolver"
	"github.com/phildawes/racer/session"
	"github.com/phildawes/racer/typeeval"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "racer",
		Short: "Rust code-intelligence queries over a single source tree",
		Long:  "racer answers completion and go-to-definition queries against Rust source without a build step.",
	}

	var jsonOut bool
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "emit results as JSON")

	rootCmd.AddCommand(
		newCompleteCmd(&jsonOut),
		newDefineCmd(&jsonOut),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCompleteCmd(jsonOut *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <file> <line> <col>",
		Short: "List completions at a 0-based line/column",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, line, col, err := parseFileLineCol(args)
			if err != nil {
				return err
			}
			fac := newFacade()
			matches := fac.CompleteFromFile(file, line, col)
			return printMatches(matches, *jsonOut)
		},
	}
}

func newDefineCmd(jsonOut *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "define <file> <line> <col>",
		Short: "Find the definition of the identifier at a 0-based line/column",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, line, col, err := parseFileLineCol(args)
			if err != nil {
				return err
			}
			fac := newFacade()
			def := fac.FindDefinition(file, line, col)
			if def == nil {
				if *jsonOut {
					fmt.Println("null")
					return nil
				}
				fmt.Println("no definition found")
				return nil
			}
			return printMatches([]core.Match{*def}, *jsonOut)
		},
	}
}

func parseFileLineCol(args []string) (file string, line, col int, err error) {
	line, err = strconv.Atoi(args[1])
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid line %q: %w", args[1], err)
	}
	col, err = strconv.Atoi(args[2])
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid column %q: %w", args[2], err)
	}
	return args[0], line, col, nil
}

// newFacade wires one Session's worth of collaborators per invocation,
// the CLI's equivalent of a session scoped to one top-level query.
func newFacade() *query.Facade {
	cfg := rconfig.Load()
	log := slog.Default()
	sess := session.New()
	r := resolver.New(sess, manifest.NewCargoReader(), cfg.RustSrcPaths, log)
	return query.New(r, typeeval.New(r), log)
}

func printMatches(matches []core.Match, jsonOut bool) error {
	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(matches)
	}
	for _, m := range matches {
		fmt.Printf("%s\t%s\t%s:%d:%d\n", m.Name, m.Kind, m.File, m.Coords.Line, m.Coords.Column)
	}
	return nil
}
