package generator

import (
	"fmt"
	"strings"

	"github.com/umlsql/umlsql/schema"
)

// GenerateDDL serializes a relational schema as a SQL DDL script:
// one CREATE TABLE per table, then ALTER TABLE ... ADD COLUMN and
// ADD FOREIGN KEY pairs for every non-join-table foreign key. Join
// tables carry their composite primary key and both foreign keys inline.
// Identifiers are backtick-quoted; statements are separated by blank
// lines.
func GenerateDDL(s *schema.Schema) string {
	var stmts []string

	for i := range s.Tables {
		t := &s.Tables[i]
		if t.Join {
			stmts = append(stmts, createJoinTable(t))
		} else {
			stmts = append(stmts, createTable(t))
		}
	}

	for i := range s.Tables {
		t := &s.Tables[i]
		if t.Join {
			continue
		}
		for _, fk := range t.ForeignKeys {
			stmts = append(stmts,
				fmt.Sprintf("ALTER TABLE `%s` ADD COLUMN `%s` %s;",
					t.Name, fk.Column, columnType(t, fk.Column)),
				fmt.Sprintf("ALTER TABLE `%s` ADD FOREIGN KEY (`%s`) REFERENCES `%s`(`%s`);",
					t.Name, fk.Column, fk.RefTable, fk.RefColumn),
			)
		}
	}

	return strings.Join(stmts, "\n\n")
}

// createTable writes a table body. Foreign-key columns are left out of
// the CREATE and expressed by the ALTER pairs instead.
func createTable(t *schema.Table) string {
	fkCols := map[string]bool{}
	for _, fk := range t.ForeignKeys {
		fkCols[fk.Column] = true
	}

	var defs []string
	for _, col := range t.Columns {
		if fkCols[col.Name] {
			continue
		}
		line := fmt.Sprintf("  `%s` %s", col.Name, col.Type)
		switch {
		case col.PrimaryKey:
			line += " PRIMARY KEY"
		case !col.Nullable:
			line += " NOT NULL"
		}
		defs = append(defs, line)
	}

	return fmt.Sprintf("CREATE TABLE `%s` (\n%s\n);", t.Name, strings.Join(defs, ",\n"))
}

func createJoinTable(t *schema.Table) string {
	lines := []string{fmt.Sprintf("CREATE TABLE `%s` (", t.Name)}

	var pk []string
	for _, col := range t.Columns {
		lines = append(lines, fmt.Sprintf("  `%s` %s NOT NULL,", col.Name, col.Type))
		if col.PrimaryKey {
			pk = append(pk, fmt.Sprintf("`%s`", col.Name))
		}
	}
	lines = append(lines, fmt.Sprintf("  PRIMARY KEY (%s),", strings.Join(pk, ", ")))

	for i, fk := range t.ForeignKeys {
		line := fmt.Sprintf("  FOREIGN KEY (`%s`) REFERENCES `%s`(`%s`)", fk.Column, fk.RefTable, fk.RefColumn)
		if i < len(t.ForeignKeys)-1 {
			line += ","
		}
		lines = append(lines, line)
	}
	lines = append(lines, ");")

	return strings.Join(lines, "\n")
}

func columnType(t *schema.Table, name string) string {
	if col, ok := t.Column(name); ok {
		return col.Type
	}
	return "INT"
}
