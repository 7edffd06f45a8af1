package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/umlsql/umlsql/validator"
)

var (
	validateFile   string
	validateKind   string
	validateFormat string
)

func init() {
	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "", "Document to validate (default: stdin)")
	validateCmd.Flags().StringVarP(&validateKind, "kind", "k", "uml", "Document kind (uml, sql, schema)")
	validateCmd.Flags().StringVar(&validateFormat, "format", "text", "Output format (text, json)")
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a document before converting it",
	Long: `Validate a UML XMI document, SQL DDL script, or schema markup file
and report everything a conversion would reject, drop, or default.

Findings come in three severities:
- Errors: the document cannot be parsed at all, so conversions fail
- Warnings: constructs the converters drop silently (classes without a
  name, associations without exactly two ends, unresolved references,
  statements outside the supported SQL subset)
- Info: values the converters default (unknown types, missing bounds,
  synthetic primary keys)

Examples:
  umlsql validate -f model.xmi                 # Validate a UML document
  umlsql validate -f schema.sql --kind sql     # Validate a DDL script
  umlsql validate -f schema.xml --kind schema  # Validate schema markup
  umlsql validate -f model.xmi --format json   # Results as JSON
`,
	Run: func(cmd *cobra.Command, args []string) {
		input, err := readInput(validateFile)
		if err != nil {
			fmt.Println("❌ Reading input:", err)
			os.Exit(1)
		}

		var result *validator.ValidationResult
		switch validateKind {
		case "uml":
			result = validator.ValidateUML(input)
		case "sql":
			result = validator.ValidateDDL(input)
		case "schema":
			result = validator.ValidateSchemaXML(input)
		default:
			fmt.Println("❌ Unknown document kind:", validateKind)
			os.Exit(1)
		}

		if validateFormat == "json" {
			err = outputJSON(result)
		} else {
			err = outputText(result)
		}
		if err != nil {
			fmt.Println("❌ Writing results:", err)
			os.Exit(1)
		}

		if !result.Valid {
			os.Exit(1)
		}
	},
}

func outputJSON(result *validator.ValidationResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputText(result *validator.ValidationResult) error {
	if result.Valid {
		color.Green("✅ Document validation passed!")
	} else {
		color.Red("❌ Document validation failed!")
	}

	if len(result.Errors) > 0 {
		fmt.Printf("\n🔴 Errors (%d):\n", len(result.Errors))
		printFindings(result.Errors)
	}

	if len(result.Warnings) > 0 {
		fmt.Printf("\n🟡 Warnings (%d):\n", len(result.Warnings))
		printFindings(result.Warnings)
	}

	if len(result.Info) > 0 {
		fmt.Printf("\n🔵 Info (%d):\n", len(result.Info))
		printFindings(result.Info)
	}

	fmt.Printf("\n📊 Summary:\n")
	fmt.Printf("  • Errors: %d\n", len(result.Errors))
	fmt.Printf("  • Warnings: %d\n", len(result.Warnings))
	fmt.Printf("  • Info: %d\n", len(result.Info))

	if result.Valid {
		fmt.Printf("\n🎉 Your document is ready to convert!\n")
	} else {
		fmt.Printf("\n💡 Fix the errors above before converting.\n")
	}

	return nil
}

func printFindings(findings []validator.ValidationError) {
	for i, f := range findings {
		fmt.Printf("  %d. ", i+1)
		if f.Element != "" {
			fmt.Printf("[%s]", f.Element)
		}
		if f.Detail != "" {
			fmt.Printf(" %s", f.Detail)
		}
		fmt.Printf(": %s\n", f.Message)
	}
}
