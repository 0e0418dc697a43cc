/*
PURPOSE:
  Defines the 'list-encodings' subcommand.
  Prints the tokenizer encodings the reference backend knows about.

REQUIREMENTS:
  User-specified:
  - Quick way to discover valid model-id arguments for 'run'.

  Implementation-discovered:
  - The tokenizer library does not export its registry; the encoding
    names are stable public identifiers, so a local list is fine.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli/root.go

ERROR HANDLING:
  - None; pure printing.

IMPLEMENTATION RULES:
  - Plain fmt output; this is interactive convenience, not a report.

USAGE:
  tokbench list-encodings

SELF-HEALING INSTRUCTIONS:
  - Add new encodings here when the tokenizer library grows them.

RELATED FILES:
  - internal/tokenizer/reference.go

MAINTENANCE:
  - Keep in sync with the pkoukk/tiktoken-go registry.
*/

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var encodings = []struct {
	name   string
	models string
}{
	{"o200k_base", "gpt-4o, o1"},
	{"cl100k_base", "gpt-4, gpt-3.5-turbo, text-embedding-3-*"},
	{"p50k_base", "text-davinci-003, code-davinci-002"},
	{"p50k_edit", "text-davinci-edit-001"},
	{"r50k_base", "gpt2-era models"},
}

var listEncodingsCmd = &cobra.Command{
	Use:   "list-encodings",
	Short: "List known tokenizer encodings and example models",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, e := range encodings {
			fmt.Printf("- %-12s (%s)\n", e.name, e.models)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listEncodingsCmd)
}
