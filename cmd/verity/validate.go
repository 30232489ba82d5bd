package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	verity "github.com/verity-go/verity"
	"github.com/verity-go/verity/message"
	"github.com/verity-go/verity/schemafile"
)

var validateCmd = &cobra.Command{
	Use:   "validate <schema> <input>...",
	Short: "Validate JSON or YAML documents against a schema file",
	Long: `Validate conforms each input document against the schema and prints
one line per failure with its JSON Pointer path. The exit code is 1
when any document fails.`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		failed, err := runValidate(args[0], args[1:])
		if err != nil {
			fmt.Fprintf(os.Stderr, "validate: %v\n", err)
			os.Exit(1)
		}
		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(schemaPath string, inputs []string) (bool, error) {
	contract, err := schemafile.Load(schemaPath)
	if err != nil {
		return false, err
	}
	logger.Debug("schema compiled", "path", schemaPath)

	failed := false
	for _, input := range inputs {
		data, err := os.ReadFile(input)
		if err != nil {
			return false, err
		}
		var out verity.Outcome
		if strings.HasSuffix(strings.ToLower(input), ".json") {
			out, err = contract.ConformJSON(data)
		} else {
			out, err = contract.ConformYAML(data)
		}
		if err != nil {
			return false, fmt.Errorf("%s: %w", input, err)
		}
		if out.OK() {
			fmt.Printf("%s: ok\n", input)
			continue
		}
		failed = true
		for _, line := range message.Lines(out.Err) {
			fmt.Printf("%s: %s\n", input, line)
		}
	}
	return failed, nil
}
