package loader

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/umlsql/umlsql/schema"
)

const ident = "[`\"]?(\\w+)[`\"]?"

var (
	createTableRe = regexp.MustCompile(`(?i)^CREATE\s+TABLE\s`)
	foreignKeyRe  = regexp.MustCompile(`(?i)ALTER\s+TABLE\s+` + ident +
		`\s+ADD\s+FOREIGN\s+KEY\s*\(\s*` + ident + `\s*\)\s*REFERENCES\s+` + ident +
		`\s*\(\s*` + ident + `\s*\)`)
)

// ParseDDL reads a relational schema from a SQL DDL script. Only the
// generated subset is understood: CREATE TABLE bodies and ALTER TABLE ...
// ADD FOREIGN KEY statements. ALTER ... ADD COLUMN statements are
// recognized and deliberately skipped, since generated scripts express
// foreign-key columns that way and the column is reconstructed from the
// foreign key itself. Everything else is ignored; only a script whose
// statements cannot be delimited at all fails the parse.
func ParseDDL(input string) (*schema.Schema, error) {
	stmts, err := SplitStatements(input)
	if err != nil {
		return nil, fmt.Errorf("parsing DDL script: %w", err)
	}

	s := &schema.Schema{}
	tableIdx := map[string]int{} // table name -> index into s.Tables

	for _, stmt := range stmts {
		t, ok := ParseCreateTable(stmt)
		if !ok {
			continue
		}
		if j, exists := tableIdx[t.Name]; exists {
			s.Tables[j] = t
			continue
		}
		tableIdx[t.Name] = len(s.Tables)
		s.Tables = append(s.Tables, t)
	}

	// Second pass, so a foreign key may precede its table's CREATE.
	for _, stmt := range stmts {
		table, fk, ok := ParseForeignKey(stmt)
		if !ok {
			continue
		}
		if j, exists := tableIdx[table]; exists {
			s.Tables[j].ForeignKeys = append(s.Tables[j].ForeignKeys, fk)
		}
	}

	return s, nil
}

// ParseForeignKey reads one ALTER TABLE ... ADD FOREIGN KEY statement and
// returns the altered table's name and the key it adds.
func ParseForeignKey(stmt string) (string, schema.ForeignKey, bool) {
	upper := strings.ToUpper(stmt)
	if !strings.Contains(upper, "FOREIGN KEY") || !strings.Contains(upper, "REFERENCES") {
		return "", schema.ForeignKey{}, false
	}
	m := foreignKeyRe.FindStringSubmatch(stmt)
	if m == nil {
		return "", schema.ForeignKey{}, false
	}
	return m[1], schema.ForeignKey{Column: m[2], RefTable: m[3], RefColumn: m[4]}, true
}

// SplitStatements cuts raw SQL into statements on top-level semicolons.
// Line and block comments are stripped, quoted runs are opaque. An
// unterminated quote or block comment means statement boundaries can no
// longer be found, which fails the whole script.
func SplitStatements(input string) ([]string, error) {
	var stmts []string
	var b strings.Builder

	flush := func(terminated bool) {
		stmt := strings.TrimSpace(b.String())
		b.Reset()
		if stmt == "" {
			return
		}
		if terminated {
			stmt += ";"
		}
		stmts = append(stmts, stmt)
	}

	for i, n := 0, len(input); i < n; {
		switch ch := input[i]; {
		case ch == '-' && i+1 < n && input[i+1] == '-':
			for i < n && input[i] != '\n' {
				i++
			}
		case ch == '/' && i+1 < n && input[i+1] == '*':
			end := strings.Index(input[i+2:], "*/")
			if end < 0 {
				return nil, fmt.Errorf("unterminated block comment")
			}
			i += 2 + end + 2
			b.WriteByte(' ')
		case ch == '\'' || ch == '"' || ch == '`':
			j := i + 1
			for j < n && input[j] != ch {
				j++
			}
			if j == n {
				return nil, fmt.Errorf("unterminated quoted identifier or literal")
			}
			b.WriteString(input[i : j+1])
			i = j + 1
		case ch == ';':
			flush(true)
			i++
		default:
			b.WriteByte(ch)
			i++
		}
	}
	flush(false)

	return stmts, nil
}

// ParseCreateTable reads one CREATE TABLE statement. The body is split on
// top-level commas only, so parenthesized type specifications such as
// VARCHAR(255) never split a definition. Definitions led by FOREIGN or
// PRIMARY are constraint clauses, not columns. A statement whose
// parentheses cannot be segmented is skipped.
func ParseCreateTable(stmt string) (schema.Table, bool) {
	if !createTableRe.MatchString(stmt) {
		return schema.Table{}, false
	}

	open := strings.IndexByte(stmt, '(')
	if open < 0 {
		return schema.Table{}, false
	}
	end := matchingParen(stmt, open)
	if end < 0 {
		return schema.Table{}, false
	}
	header, body := stmt[:open], stmt[open+1:end]

	fields := strings.Fields(header)
	if len(fields) < 3 {
		return schema.Table{}, false
	}
	t := schema.Table{Name: trimQuotes(fields[2])}

	for _, def := range splitTopLevel(body) {
		parts := strings.Fields(def)
		if len(parts) < 2 {
			continue
		}
		switch strings.ToUpper(parts[0]) {
		case "FOREIGN", "PRIMARY":
			continue
		}
		rest := strings.ToUpper(strings.Join(parts[1:], " "))
		col := schema.Column{
			Name:       trimQuotes(parts[0]),
			Type:       parts[1],
			PrimaryKey: strings.Contains(rest, "PRIMARY KEY"),
		}
		col.Nullable = !col.PrimaryKey && !strings.Contains(rest, "NOT NULL")
		t.Columns = append(t.Columns, col)
	}

	return t, true
}

func matchingParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func splitTopLevel(body string) []string {
	if strings.TrimSpace(body) == "" {
		return nil
	}
	var defs []string
	depth, start := 0, 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				defs = append(defs, body[start:i])
				start = i + 1
			}
		}
	}
	return append(defs, body[start:])
}

func trimQuotes(s string) string {
	return strings.Trim(s, "`\"")
}
