package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/umlsql/umlsql/convert"
)

var uml2sqlFile string
var uml2sqlOutput string

func init() {
	uml2sqlCmd.Flags().StringVarP(&uml2sqlFile, "file", "f", "", "UML XMI file to convert (default: stdin)")
	uml2sqlCmd.Flags().StringVarP(&uml2sqlOutput, "output", "o", "", "File to write the SQL script to (default: stdout)")
}

var uml2sqlCmd = &cobra.Command{
	Use:   "uml2sql",
	Short: "Convert a UML class model (XMI) to a SQL DDL script",
	Long: `Convert a UML class model in XMI 2.1 format to a SQL DDL script.

Classes become tables, attributes become columns, and associations
become foreign keys or join tables depending on their multiplicities.
Classes without an id attribute receive a synthetic INT primary key.

Examples:
  umlsql uml2sql -f model.xmi                 # Print the SQL script
  umlsql uml2sql -f model.xmi -o schema.sql   # Write it to a file
  cat model.xmi | umlsql uml2sql              # Read the model from stdin
`,
	Run: func(cmd *cobra.Command, args []string) {
		input, err := readInput(uml2sqlFile)
		if err != nil {
			fmt.Println("❌ Reading input:", err)
			os.Exit(1)
		}

		output, err := convert.UMLToSQL(input)
		if err != nil {
			fmt.Println("❌ Converting UML to SQL:", err)
			os.Exit(1)
		}

		if err := writeOutput(uml2sqlOutput, output); err != nil {
			fmt.Println("❌ Writing output:", err)
			os.Exit(1)
		}
	},
}
