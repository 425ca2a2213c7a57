// Command mical evaluates Mical configuration files and offers a small
// set of debug utilities for inspecting how one was parsed. Grounded on
// original_source/main.rs's `eval`/`dev` subcommands, rebuilt on
// github.com/spf13/cobra per the teacher's CLI stack.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/repr"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/maloquacious/semver"
	"github.com/spf13/cobra"

	"github.com/mical-lang/mical/ast"
	"github.com/mical-lang/mical/config"
	"github.com/mical-lang/mical/cst"
	"github.com/mical-lang/mical/parser"
)

var version = semver.Version{Major: 0, Minor: 1, Patch: 0, Build: semver.Commit()}

// errSilent signals that eval already reported everything a user needs
// to see (syntax/config errors on stderr, the best-effort result on
// stdout) and main should just exit non-zero without cobra printing
// anything further.
var errSilent = errors.New("")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if err.Error() != "" {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mical",
		Short:         "Mical configuration language tool",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newEvalCmd())
	root.AddCommand(newDevCmd())
	return root
}

func newEvalCmd() *cobra.Command {
	var outputPath, format, getKey, prefixKey string

	cmd := &cobra.Command{
		Use:   "eval <file>",
		Short: "Evaluate a .mical file and output the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(args[0], outputPath, format, getKey, prefixKey)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output-path", "o", "", "write the result to a file instead of stdout")
	cmd.Flags().StringVarP(&format, "format", "f", "json", `output format (currently only "json")`)
	cmd.Flags().StringVar(&getKey, "get", "", "return the value(s) for an exact key match")
	cmd.Flags().StringVar(&prefixKey, "prefix", "", "return all entries whose key starts with the given prefix")
	cmd.MarkFlagsMutuallyExclusive("get", "prefix")

	return cmd
}

func runEval(path, outputPath, format, getKey, prefixKey string) error {
	if !strings.EqualFold(format, "json") {
		return fmt.Errorf("unsupported format: %q (supported: json)", format)
	}

	runID := uuid.New()
	start := time.Now()

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read %q: %w", path, err)
	}

	root, syntaxErrors := parser.Parse(source)
	for _, e := range syntaxErrors {
		fmt.Fprintln(os.Stderr, "syntax error:", e)
	}

	sourceFile := ast.NewSourceFile(root)
	cfg, configErrors := config.FromSourceFile(sourceFile)
	for _, e := range configErrors {
		fmt.Fprintln(os.Stderr, "config error:", e)
	}

	jsonOutput := queryResult(cfg, getKey, prefixKey)

	encoded, err := json.MarshalIndent(jsonOutput, "", "  ")
	if err != nil {
		return fmt.Errorf("JSON serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, append(encoded, '\n'), 0o644); err != nil {
			return fmt.Errorf("cannot write to %q: %w", outputPath, err)
		}
	} else {
		fmt.Println(string(encoded))
	}

	log.Printf("[%s] evaluated %s (%s) in %s", runID, path, humanize.Bytes(uint64(len(source))), time.Since(start))

	if len(syntaxErrors) > 0 || len(configErrors) > 0 {
		return errSilent
	}
	return nil
}

func queryResult(cfg *config.Config, getKey, prefixKey string) any {
	switch {
	case getKey != "":
		values := cfg.Query(getKey)
		switch len(values) {
		case 0:
			return nil
		case 1:
			return values[0].ToJSON()
		default:
			arr := make([]any, len(values))
			for i, v := range values {
				arr[i] = v.ToJSON()
			}
			return arr
		}

	case prefixKey != "":
		out := make(map[string]any)
		lastKey, hasLast := "", false
		for _, e := range cfg.QueryPrefix(prefixKey) {
			val := e.Value.ToJSON()
			if hasLast && lastKey == e.Key {
				if arr, ok := out[e.Key].([]any); ok {
					out[e.Key] = append(arr, val)
				} else {
					out[e.Key] = []any{out[e.Key], val}
				}
			} else {
				out[e.Key] = val
			}
			lastKey, hasLast = e.Key, true
		}
		return out

	default:
		return cfg.ToJSON()
	}
}

func newDevCmd() *cobra.Command {
	var showCST, showAST bool

	cmd := &cobra.Command{
		Use:    "dev <file>",
		Short:  "(internal) debug utilities — not for end users",
		Hidden: true,
		Args:   cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDev(args[0], showCST, showAST)
		},
	}

	cmd.Flags().BoolVar(&showCST, "cst", false, "print the CST (concrete syntax tree)")
	cmd.Flags().BoolVar(&showAST, "ast", false, "print the AST (abstract syntax tree)")

	return cmd
}

func runDev(path string, showCST, showAST bool) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read %q: %w", path, err)
	}

	root, syntaxErrors := parser.Parse(source)

	printBoth := !showCST && !showAST

	if showCST || printBoth {
		fmt.Println("=== CST ===")
		fmt.Print(cst.Dump(root))
	}

	if showAST || printBoth {
		if showCST || printBoth {
			fmt.Println()
		}
		fmt.Println("=== AST ===")
		fmt.Println(repr.String(ast.NewSourceFile(root), repr.Indent("  ")))
	}

	if len(syntaxErrors) > 0 {
		fmt.Println()
		fmt.Println("=== Syntax Errors ===")
		for _, e := range syntaxErrors {
			fmt.Println(" ", e)
		}
	}

	return nil
}
