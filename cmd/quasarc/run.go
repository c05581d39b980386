package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oxhq/quasar/internal/compiler"
	"github.com/oxhq/quasar/internal/config"
	"github.com/oxhq/quasar/internal/runner"
	"github.com/oxhq/quasar/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run <file> [-- program args...]",
	Short: "Compile a Quasar file and run the emitted Python immediately",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	file := args[0]
	progArgs := args[1:]

	cfg := config.LoadConfig()

	res := compiler.Compile(file)
	success := res.Python != ""

	if db, err := store.Connect(cfg.DBPath, false); err == nil {
		codes := diagCodesOf(res.Diagnostics)
		_ = store.Record(db, &store.CompileRun{
			SourcePath: file,
			Verb:       "run",
			Success:    success,
			DiagCount:  len(res.Diagnostics),
			DiagCodes:  codes,
		})
	}

	if !success {
		for _, d := range res.Diagnostics {
			fmt.Fprintln(os.Stderr, d.Error())
		}
		return fmt.Errorf("%s failed to compile", file)
	}

	result, err := runner.RunPython(cfg.PythonBin, res.Python, progArgs)
	if err != nil {
		return err
	}
	fmt.Print(result.Stdout)
	fmt.Fprint(os.Stderr, result.Stderr)
	if result.ExitCode != 0 {
		os.Exit(result.ExitCode)
	}
	return nil
}
