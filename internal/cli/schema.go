package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
	"github.com/stoewer/go-strcase"

	"github.com/staylens/staylens/internal/dataset"
)

// schemaCmd represents the schema command
var schemaCmd = &cobra.Command{
	Use:    "schema",
	Short:  "Output the booking record JSON schema",
	Long:   `Output the JSON schema of a cleaned booking record, as consumed by downstream tooling.`,
	Hidden: true,
	Run: func(cmd *cobra.Command, args []string) {
		schemaBytes, err := bookingSchema()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error generating schema: %v\n", err)
			os.Exit(1)
			return
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(schemaBytes))
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func bookingSchema() ([]byte, error) {
	reflector := &jsonschema.Reflector{
		KeyNamer: strcase.SnakeCase,
		Namer: func(t reflect.Type) string {
			return strcase.SnakeCase(t.Name())
		},
		ExpandedStruct: true,
	}

	schema := reflector.Reflect(&dataset.Booking{})
	return json.MarshalIndent(schema, "", "  ")
}
