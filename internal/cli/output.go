package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

const jsonFlag = "json"

func wantJSON(cmd *cobra.Command) bool {
	v, err := cmd.Flags().GetBool(jsonFlag)
	return err == nil && v
}

// render writes v as indented JSON when --json is set, otherwise the text
// produced by format.
func render(cmd *cobra.Command, v any, format func() string) error {
	if wantJSON(cmd) {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), format())
	return err
}
