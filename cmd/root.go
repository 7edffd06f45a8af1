package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "umlsql",
	Short: "Convert between UML class models and relational schemas",
	Long: `umlsql translates UML class models (XMI 2.1) into relational
schemas and back, as SQL DDL scripts or schema markup.

Examples:

  umlsql uml2sql -f model.xmi -o schema.sql
  umlsql sql2uml -f schema.sql -o model.xmi
  umlsql uml2schema -f model.xmi -o schema.xml
  umlsql schema2uml -f schema.xml -o model.xmi
`,
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
}

// Register subcommands
func init() {
	rootCmd.AddCommand(uml2sqlCmd)
	rootCmd.AddCommand(sql2umlCmd)
	rootCmd.AddCommand(uml2schemaCmd)
	rootCmd.AddCommand(schema2umlCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(introspectCmd)
}

// readInput returns the document to convert: stdin when path is empty
// or "-", the file contents otherwise.
func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %v", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %v", path, err)
	}
	return string(data), nil
}

// writeOutput prints the conversion result, or writes it to a file when
// an output path is given.
func writeOutput(path, text string) error {
	if path == "" {
		fmt.Println(text)
		return nil
	}

	if err := os.WriteFile(path, []byte(text+"\n"), 0644); err != nil {
		return fmt.Errorf("writing %s: %v", path, err)
	}
	fmt.Println("✅ Written:", path)
	return nil
}
