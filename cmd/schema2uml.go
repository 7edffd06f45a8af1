package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/umlsql/umlsql/convert"
)

var schema2umlFile string
var schema2umlOutput string

func init() {
	schema2umlCmd.Flags().StringVarP(&schema2umlFile, "file", "f", "", "Schema markup file to convert (default: stdin)")
	schema2umlCmd.Flags().StringVarP(&schema2umlOutput, "output", "o", "", "File to write the XMI document to (default: stdout)")
}

var schema2umlCmd = &cobra.Command{
	Use:   "schema2uml",
	Short: "Convert schema markup to a UML class model (XMI)",
	Long: `Convert a schema markup document to a UML class model in XMI 2.1
format.

The mapping is the same as sql2uml: tables become classes, foreign keys
become associations, and foreign-key columns are expressed by their
association instead of being repeated as attributes.

Examples:
  umlsql schema2uml -f schema.xml               # Print the XMI document
  umlsql schema2uml -f schema.xml -o model.xmi  # Write it to a file
  cat schema.xml | umlsql schema2uml            # Read the markup from stdin
`,
	Run: func(cmd *cobra.Command, args []string) {
		input, err := readInput(schema2umlFile)
		if err != nil {
			fmt.Println("❌ Reading input:", err)
			os.Exit(1)
		}

		output, err := convert.SchemaXMLToUML(input)
		if err != nil {
			fmt.Println("❌ Converting schema markup to UML:", err)
			os.Exit(1)
		}

		if err := writeOutput(schema2umlOutput, output); err != nil {
			fmt.Println("❌ Writing output:", err)
			os.Exit(1)
		}
	},
}
