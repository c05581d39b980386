package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxhq/quasar/internal/compiler"
	"github.com/oxhq/quasar/internal/config"
	"github.com/oxhq/quasar/internal/store"
)

var checkHistory int

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Check Quasar source files without emitting Python",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().IntVar(&checkHistory, "history", 0, "print the last N compile-history rows for each file instead of checking it")
}

func runCheck(cmd *cobra.Command, args []string) error {
	files := expandGlobs(args)
	cfg := config.LoadConfig()

	if checkHistory > 0 {
		db, err := store.Connect(cfg.DBPath, false)
		if err != nil {
			return fmt.Errorf("cannot open history database: %w", err)
		}
		for _, file := range files {
			runs, err := store.Recent(db, file, checkHistory)
			if err != nil {
				return fmt.Errorf("cannot read history for %s: %w", file, err)
			}
			fmt.Printf("%s:\n", file)
			for _, r := range runs {
				status := "ok"
				if !r.Success {
					status = fmt.Sprintf("%d error(s): %s", r.DiagCount, r.DiagCodes)
				}
				fmt.Printf("  %s  %s  %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"), r.Verb, status)
			}
		}
		return nil
	}

	failed := false
	for _, file := range files {
		groups, err := compiler.Check(file)
		if err != nil {
			fmt.Printf("%s: %v\n", file, err)
			failed = true
			continue
		}
		if len(groups) == 0 {
			fmt.Printf("%s: ok\n", file)
			continue
		}
		failed = true
		for _, g := range groups {
			fmt.Printf("%s [%s]: %d diagnostic(s)\n", file, g.Stage, len(g.Diagnostics))
			for _, d := range g.Diagnostics {
				fmt.Println("  " + d.Error())
			}
		}
	}

	if failed {
		return fmt.Errorf("one or more files failed checks")
	}
	return nil
}
