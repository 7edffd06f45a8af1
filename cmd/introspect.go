package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/umlsql/umlsql/config"
	"github.com/umlsql/umlsql/database"
	"github.com/umlsql/umlsql/generator"
	"github.com/umlsql/umlsql/introspect"
	"github.com/umlsql/umlsql/transform"
	"github.com/umlsql/umlsql/utils"
)

var (
	introspectConfig string
	introspectFormat string
	introspectOutput string
)

func init() {
	introspectCmd.Flags().StringVarP(&introspectConfig, "config", "c", "", "Config file (default: umlsql.yaml if present)")
	introspectCmd.Flags().StringVar(&introspectFormat, "format", "uml", "Output format (uml, sql, schema)")
	introspectCmd.Flags().StringVarP(&introspectOutput, "output", "o", "", "File to write the result to (default: stdout)")
}

var introspectCmd = &cobra.Command{
	Use:   "introspect",
	Short: "Reverse-engineer a UML model from a live PostgreSQL database",
	Long: `Read the tables of a live PostgreSQL database and render them as a
UML class model, a SQL DDL script, or schema markup.

The connection URL comes from the config file, a .env file, or the
DATABASE_URL environment variable. Tables whose primary key is exactly
its two foreign-key columns are treated as join tables and come back as
many-to-many associations in the UML output.

Examples:
  umlsql introspect                          # Print the UML model
  umlsql introspect --format sql             # Print the schema as DDL
  umlsql introspect -c prod.yaml -o db.xmi   # Custom config, write a file
`,
	Run: func(cmd *cobra.Command, args []string) {
		utils.LoadEnv()

		cfg, err := config.Load(introspectConfig)
		if err != nil {
			fmt.Println("❌ Loading config:", err)
			os.Exit(1)
		}
		cfg.ApplyEnv()
		if err := cfg.Validate(); err != nil {
			fmt.Println("❌ Invalid config:", err)
			os.Exit(1)
		}

		ctx := context.Background()
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			fmt.Println("❌ Connecting to database:", err)
			os.Exit(1)
		}
		defer pool.Close()

		s, err := introspect.Introspect(ctx, pool, cfg.Schema, cfg.Exclude)
		if err != nil {
			fmt.Println("❌ Introspecting database:", err)
			os.Exit(1)
		}

		var output string
		switch introspectFormat {
		case "uml":
			output, err = generator.GenerateUML(transform.ToClassModel(s))
		case "sql":
			output = generator.GenerateDDL(s)
		case "schema":
			output, err = generator.GenerateSchemaXML(s)
		default:
			fmt.Println("❌ Unknown output format:", introspectFormat)
			os.Exit(1)
		}
		if err != nil {
			fmt.Println("❌ Rendering result:", err)
			os.Exit(1)
		}

		if err := writeOutput(introspectOutput, output); err != nil {
			fmt.Println("❌ Writing output:", err)
			os.Exit(1)
		}
	},
}
