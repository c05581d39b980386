package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oxhq/quasar/internal/compiler"
	"github.com/oxhq/quasar/internal/config"
	"github.com/oxhq/quasar/internal/diag"
	"github.com/oxhq/quasar/internal/runner"
	"github.com/oxhq/quasar/internal/store"
)

var (
	compileOut  string
	compileJSON bool
	compileDiff bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [files...]",
	Short: "Compile Quasar source files to Python",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().StringVarP(&compileOut, "output", "o", "", "output path (single-file only; defaults to replacing .qsr with .py)")
	compileCmd.Flags().BoolVar(&compileJSON, "json", false, "emit machine-readable JSON results")
	compileCmd.Flags().BoolVar(&compileDiff, "diff", false, "show a unified diff against any existing output file before writing")
}

type compileFileResult struct {
	Source      string             `json:"source"`
	Output      string             `json:"output,omitempty"`
	Success     bool               `json:"success"`
	Diagnostics []diag.Diagnostic  `json:"diagnostics,omitempty"`
}

func runCompile(cmd *cobra.Command, args []string) error {
	files := expandGlobs(args)
	if compileOut != "" && len(files) > 1 {
		return fmt.Errorf("-o can only be used with a single input file")
	}

	cfg := config.LoadConfig()
	db, dbErr := store.Connect(cfg.DBPath, false)

	var results []compileFileResult
	exitErr := false

	for _, file := range files {
		res := compiler.Compile(file)
		cr := compileFileResult{Source: file, Success: res.Python != ""}

		if res.Python == "" {
			cr.Diagnostics = res.Diagnostics
			exitErr = true
		} else {
			outPath := compileOut
			if outPath == "" {
				outPath = strings.TrimSuffix(file, ".qsr") + ".py"
			}
			cr.Output = outPath

			if compileDiff {
				if existing, err := os.ReadFile(outPath); err == nil {
					fmt.Fprint(os.Stderr, runner.UnifiedDiff(string(existing), res.Python, outPath, true))
				}
			}

			if err := runner.WriteFile(outPath, res.Python, runner.DefaultAtomicConfig()); err != nil {
				cr.Success = false
				cr.Diagnostics = []diag.Diagnostic{{Code: diag.ErrFileNotFound, Message: err.Error()}}
				exitErr = true
			}
		}

		results = append(results, cr)

		if dbErr == nil {
			codes := diagCodesOf(cr.Diagnostics)
			_ = store.Record(db, &store.CompileRun{
				SourcePath:  file,
				Verb:        "compile",
				Success:     cr.Success,
				DiagCount:   len(cr.Diagnostics),
				DiagCodes:   codes,
				EmittedPath: cr.Output,
			})
		}
	}

	if compileJSON {
		b, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(b))
	} else {
		for _, r := range results {
			if r.Success {
				fmt.Printf("%s -> %s\n", r.Source, r.Output)
				continue
			}
			fmt.Printf("%s: %d error(s)\n", r.Source, len(r.Diagnostics))
			for _, d := range r.Diagnostics {
				fmt.Println("  " + d.Error())
			}
		}
	}

	if exitErr {
		return fmt.Errorf("compilation failed for one or more files")
	}
	return nil
}

func diagCodesOf(ds []diag.Diagnostic) string {
	codes := make([]string, len(ds))
	for i, d := range ds {
		codes[i] = string(d.Code)
	}
	return strings.Join(codes, ",")
}
