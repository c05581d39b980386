// Command quasarc is Quasar's CLI driver: compile, run, and check verbs
// over the core compiler (spec.md §6's "external collaborator" — the core
// itself never touches the filesystem, stdout, or a subprocess).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "quasarc",
	Short: "Compile and run Quasar source files",
	Long:  "quasarc compiles Quasar (.qsr) source to Python 3.10+, and can run the result directly.",
}

func init() {
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
}
