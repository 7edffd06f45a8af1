package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/umlsql/umlsql/convert"
)

var uml2schemaFile string
var uml2schemaOutput string

func init() {
	uml2schemaCmd.Flags().StringVarP(&uml2schemaFile, "file", "f", "", "UML XMI file to convert (default: stdin)")
	uml2schemaCmd.Flags().StringVarP(&uml2schemaOutput, "output", "o", "", "File to write the schema markup to (default: stdout)")
}

var uml2schemaCmd = &cobra.Command{
	Use:   "uml2schema",
	Short: "Convert a UML class model (XMI) to schema markup",
	Long: `Convert a UML class model in XMI 2.1 format to schema markup.

The mapping is the same as uml2sql, rendered as markup instead of DDL:
a database root with one table element per class, carrying column and
foreignKey elements.

Examples:
  umlsql uml2schema -f model.xmi                # Print the markup
  umlsql uml2schema -f model.xmi -o schema.xml  # Write it to a file
  cat model.xmi | umlsql uml2schema             # Read the model from stdin
`,
	Run: func(cmd *cobra.Command, args []string) {
		input, err := readInput(uml2schemaFile)
		if err != nil {
			fmt.Println("❌ Reading input:", err)
			os.Exit(1)
		}

		output, err := convert.UMLToSchemaXML(input)
		if err != nil {
			fmt.Println("❌ Converting UML to schema markup:", err)
			os.Exit(1)
		}

		if err := writeOutput(uml2schemaOutput, output); err != nil {
			fmt.Println("❌ Writing output:", err)
			os.Exit(1)
		}
	},
}
