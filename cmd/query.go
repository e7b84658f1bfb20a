package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zbierak/ipa/internal/query"
)

var queryCmd = &cobra.Command{
	Use:   "query <jsonpath>",
	Short: "Evaluate a JSON path expression against the attached devices' catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := buildRegistry()
		if err != nil {
			return err
		}

		tree := query.Build(reg)
		results, err := query.Eval(tree, args[0])
		if err != nil {
			return fmt.Errorf("evaluate query: %w", err)
		}

		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}
