package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/verity-go/verity/schemafile"
)

var checkCmd = &cobra.Command{
	Use:   "check <schema>",
	Short: "Compile a schema file and report authoring mistakes",
	Long: `Check parses and compiles a schema file without validating any input.
Unknown primitives, unknown predicates, bad arity, duplicate keys and
missing casters are all reported here.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCheck(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "check failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s: schema is valid\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(path string) error {
	logger.Debug("compiling schema", "path", path)
	_, err := schemafile.Load(path)
	return err
}
