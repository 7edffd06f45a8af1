package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/umlsql/umlsql/convert"
)

var sql2umlFile string
var sql2umlOutput string

func init() {
	sql2umlCmd.Flags().StringVarP(&sql2umlFile, "file", "f", "", "SQL DDL script to convert (default: stdin)")
	sql2umlCmd.Flags().StringVarP(&sql2umlOutput, "output", "o", "", "File to write the XMI document to (default: stdout)")
}

var sql2umlCmd = &cobra.Command{
	Use:   "sql2uml",
	Short: "Convert a SQL DDL script to a UML class model (XMI)",
	Long: `Convert a SQL DDL script to a UML class model in XMI 2.1 format.

Tables become classes and foreign keys become associations with
multiplicity (1,1) on the referenced side and (0,*) on the referencing
side. Foreign-key columns are expressed by their association instead of
being repeated as attributes. Statements outside the supported subset
are skipped.

Examples:
  umlsql sql2uml -f schema.sql                # Print the XMI document
  umlsql sql2uml -f schema.sql -o model.xmi   # Write it to a file
  cat schema.sql | umlsql sql2uml             # Read the script from stdin
`,
	Run: func(cmd *cobra.Command, args []string) {
		input, err := readInput(sql2umlFile)
		if err != nil {
			fmt.Println("❌ Reading input:", err)
			os.Exit(1)
		}

		output, err := convert.SQLToUML(input)
		if err != nil {
			fmt.Println("❌ Converting SQL to UML:", err)
			os.Exit(1)
		}

		if err := writeOutput(sql2umlOutput, output); err != nil {
			fmt.Println("❌ Writing output:", err)
			os.Exit(1)
		}
	},
}
