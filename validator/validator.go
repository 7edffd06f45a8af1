package validator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/umlsql/umlsql/loader"
	"github.com/umlsql/umlsql/uml"
)

// ValidationError represents a single finding with its location
type ValidationError struct {
	Type     string `json:"type"`
	Element  string `json:"element,omitempty"`
	Detail   string `json:"detail,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // "error", "warning", "info"
}

// ValidationResult contains all validation results for one document
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []ValidationError `json:"warnings"`
	Info     []ValidationError `json:"info"`
}

func newResult() *ValidationResult {
	return &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
		Info:     []ValidationError{},
	}
}

// ValidateUML checks an XMI class model document and reports everything
// a conversion would reject, drop, or default. Only a document that
// cannot be parsed at all is an error; constructs the converters skip
// silently surface here as warnings, defaulted values as info.
func ValidateUML(input string) *ValidationResult {
	result := newResult()

	doc := etree.NewDocument()
	if err := doc.ReadFromString(input); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Type:     "malformed_document",
			Message:  fmt.Sprintf("document cannot be parsed: %v", err),
			Severity: "error",
		})
		result.Valid = false
		return result
	}
	root := doc.Root()
	if root == nil {
		result.Errors = append(result.Errors, ValidationError{
			Type:     "malformed_document",
			Message:  "document has no root element",
			Severity: "error",
		})
		result.Valid = false
		return result
	}

	classes, assocs := loader.PackagedElements(root)
	classIDs := validateClasses(classes, result)
	validateAssociations(assocs, classIDs, result)

	result.Valid = len(result.Errors) == 0
	return result
}

// validateClasses checks every class declaration and returns the set of
// identifiers an association end may legally reference.
func validateClasses(classes []*etree.Element, result *ValidationResult) map[string]bool {
	classIDs := make(map[string]bool)
	classNames := make(map[string]bool)

	for i, el := range classes {
		id := loader.Attr(el, "id")
		name := el.SelectAttrValue("name", "")

		if id == "" || name == "" {
			result.Warnings = append(result.Warnings, ValidationError{
				Type:     "class_skipped",
				Element:  classLabel(id, name, i),
				Message:  "class without both an identifier and a name is dropped",
				Severity: "warning",
			})
			continue
		}
		classIDs[id] = true

		if classNames[name] {
			result.Warnings = append(result.Warnings, ValidationError{
				Type:     "duplicate_class",
				Element:  name,
				Message:  fmt.Sprintf("class '%s' is declared more than once; the last declaration wins", name),
				Severity: "warning",
			})
		}
		classNames[name] = true

		hasID := false
		for j, attr := range el.SelectElements("ownedAttribute") {
			attrName := attr.SelectAttrValue("name", "")
			if attrName == "" {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:     "attribute_skipped",
					Element:  name,
					Detail:   fmt.Sprintf("attribute %d", j+1),
					Message:  "attribute without a name is dropped",
					Severity: "warning",
				})
				continue
			}
			if strings.EqualFold(attrName, "id") {
				hasID = true
			}

			rawType := attr.SelectAttrValue("type", "")
			if rawType == "" {
				result.Info = append(result.Info, ValidationError{
					Type:     "missing_type",
					Element:  name,
					Detail:   attrName,
					Message:  "attribute has no type and maps to VARCHAR(255)",
					Severity: "info",
				})
			} else if uml.ParsePrimitive(rawType) == uml.String && rawType != string(uml.String) {
				result.Info = append(result.Info, ValidationError{
					Type:     "unknown_type",
					Element:  name,
					Detail:   attrName,
					Message:  fmt.Sprintf("unrecognized type '%s' maps to VARCHAR(255)", rawType),
					Severity: "info",
				})
			}
		}

		if !hasID {
			result.Info = append(result.Info, ValidationError{
				Type:     "missing_id",
				Element:  name,
				Message:  fmt.Sprintf("class '%s' has no id attribute; a synthetic INT primary key is added", name),
				Severity: "info",
			})
		}
	}

	return classIDs
}

// validateAssociations checks every association declaration against the
// identifiers collected from the class declarations.
func validateAssociations(assocs []*etree.Element, classIDs map[string]bool, result *ValidationResult) {
	for i, el := range assocs {
		label := loader.Attr(el, "id")
		if label == "" {
			label = fmt.Sprintf("association %d", i+1)
		}

		ends := el.SelectElements("ownedEnd")
		if len(ends) != 2 {
			result.Warnings = append(result.Warnings, ValidationError{
				Type:     "association_skipped",
				Element:  label,
				Message:  fmt.Sprintf("association has %d ends instead of 2 and is dropped", len(ends)),
				Severity: "warning",
			})
			continue
		}

		for j, end := range ends {
			detail := fmt.Sprintf("end %d", j+1)

			typeRef := end.SelectAttrValue("type", "")
			if !classIDs[typeRef] {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:     "dangling_reference",
					Element:  label,
					Detail:   detail,
					Message:  fmt.Sprintf("end references unknown class '%s'; the association is dropped", typeRef),
					Severity: "warning",
				})
			}

			if raw := end.SelectAttrValue("lower", ""); raw != "" {
				if _, err := strconv.Atoi(raw); err != nil {
					result.Info = append(result.Info, ValidationError{
						Type:     "multiplicity_default",
						Element:  label,
						Detail:   detail,
						Message:  fmt.Sprintf("lower bound '%s' is not numeric and defaults to 0", raw),
						Severity: "info",
					})
				}
			}
		}
	}
}

// ValidateDDL checks a SQL DDL script against the supported statement
// subset. A script whose statements cannot be delimited is an error;
// statements outside the subset and unresolved foreign keys are
// warnings or info.
func ValidateDDL(input string) *ValidationResult {
	result := newResult()

	stmts, err := loader.SplitStatements(input)
	if err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Type:     "malformed_script",
			Message:  fmt.Sprintf("script cannot be delimited: %v", err),
			Severity: "error",
		})
		result.Valid = false
		return result
	}

	tables := make(map[string]bool)
	type pendingKey struct {
		table string
		ref   string
	}
	var keys []pendingKey

	for _, stmt := range stmts {
		if t, ok := loader.ParseCreateTable(stmt); ok {
			if tables[t.Name] {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:     "duplicate_table",
					Element:  t.Name,
					Message:  fmt.Sprintf("table '%s' is created more than once; the last definition wins", t.Name),
					Severity: "warning",
				})
			}
			tables[t.Name] = true

			if len(t.Columns) == 0 {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:     "no_columns",
					Element:  t.Name,
					Message:  fmt.Sprintf("table '%s' has no column definitions", t.Name),
					Severity: "warning",
				})
			}
			continue
		}

		if table, fk, ok := loader.ParseForeignKey(stmt); ok {
			keys = append(keys, pendingKey{table: table, ref: fk.RefTable})
			continue
		}

		switch {
		case looksLikeCreateTable(stmt):
			result.Warnings = append(result.Warnings, ValidationError{
				Type:     "statement_skipped",
				Element:  snippet(stmt),
				Message:  "CREATE TABLE statement cannot be segmented and is dropped",
				Severity: "warning",
			})
		case looksLikeForeignKey(stmt):
			result.Warnings = append(result.Warnings, ValidationError{
				Type:     "statement_skipped",
				Element:  snippet(stmt),
				Message:  "foreign key statement is not in the recognized form and is dropped",
				Severity: "warning",
			})
		default:
			result.Info = append(result.Info, ValidationError{
				Type:     "statement_ignored",
				Element:  snippet(stmt),
				Message:  "statement is outside the supported subset and has no schema effect",
				Severity: "info",
			})
		}
	}

	for _, k := range keys {
		if !tables[k.table] {
			result.Warnings = append(result.Warnings, ValidationError{
				Type:     "unknown_table",
				Element:  k.table,
				Message:  fmt.Sprintf("foreign key alters unknown table '%s' and is dropped", k.table),
				Severity: "warning",
			})
			continue
		}
		if !tables[k.ref] {
			result.Warnings = append(result.Warnings, ValidationError{
				Type:     "dangling_reference",
				Element:  k.table,
				Detail:   k.ref,
				Message:  fmt.Sprintf("foreign key references unknown table '%s'; the association is dropped when converting to UML", k.ref),
				Severity: "warning",
			})
		}
	}

	if len(tables) == 0 {
		result.Info = append(result.Info, ValidationError{
			Type:     "empty_schema",
			Message:  "no CREATE TABLE statements found; the converted model is empty",
			Severity: "info",
		})
	}

	result.Valid = len(result.Errors) == 0
	return result
}

// ValidateSchemaXML checks a schema markup document: tables and columns
// the parser would drop, foreign keys missing their reference parts, and
// targets no table declares.
func ValidateSchemaXML(input string) *ValidationResult {
	result := newResult()

	doc := etree.NewDocument()
	if err := doc.ReadFromString(input); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Type:     "malformed_document",
			Message:  fmt.Sprintf("document cannot be parsed: %v", err),
			Severity: "error",
		})
		result.Valid = false
		return result
	}
	root := doc.Root()
	if root == nil {
		result.Errors = append(result.Errors, ValidationError{
			Type:     "malformed_document",
			Message:  "document has no root element",
			Severity: "error",
		})
		result.Valid = false
		return result
	}

	elements := root.SelectElements("table")
	tableNames := make(map[string]bool)
	for _, tbl := range elements {
		if name := tbl.SelectAttrValue("name", ""); name != "" {
			tableNames[name] = true
		}
	}

	for i, tbl := range elements {
		name := tbl.SelectAttrValue("name", "")
		if name == "" {
			result.Warnings = append(result.Warnings, ValidationError{
				Type:     "table_skipped",
				Element:  fmt.Sprintf("table %d", i+1),
				Message:  "table without a name is dropped",
				Severity: "warning",
			})
			continue
		}

		for j, col := range tbl.SelectElements("column") {
			colName := col.SelectAttrValue("name", "")
			if colName == "" {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:     "column_skipped",
					Element:  name,
					Detail:   fmt.Sprintf("column %d", j+1),
					Message:  "column without a name is dropped",
					Severity: "warning",
				})
				continue
			}
			if col.SelectAttrValue("type", "") == "" {
				result.Info = append(result.Info, ValidationError{
					Type:     "missing_type",
					Element:  name,
					Detail:   colName,
					Message:  "column has no type and maps to the String primitive",
					Severity: "info",
				})
			}
		}

		for j, fk := range tbl.SelectElements("foreignKey") {
			detail := fmt.Sprintf("foreignKey %d", j+1)
			target := fk.SelectAttrValue("targetTable", "")
			ref := fk.SelectElement("reference")

			if target == "" || ref == nil {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:     "foreign_key_skipped",
					Element:  name,
					Detail:   detail,
					Message:  "foreignKey without a targetTable and a reference child is dropped",
					Severity: "warning",
				})
				continue
			}
			if ref.SelectAttrValue("localColumn", "") == "" {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:     "foreign_key_reference",
					Element:  name,
					Detail:   detail,
					Message:  "reference has no localColumn",
					Severity: "warning",
				})
			}
			if !tableNames[target] {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:     "dangling_reference",
					Element:  name,
					Detail:   detail,
					Message:  fmt.Sprintf("foreignKey targets unknown table '%s'; the association is dropped when converting to UML", target),
					Severity: "warning",
				})
			}
		}
	}

	if len(elements) == 0 {
		result.Info = append(result.Info, ValidationError{
			Type:     "empty_schema",
			Message:  "no table elements found; the converted model is empty",
			Severity: "info",
		})
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func classLabel(id, name string, i int) string {
	switch {
	case name != "":
		return name
	case id != "":
		return id
	default:
		return fmt.Sprintf("class %d", i+1)
	}
}

func looksLikeCreateTable(stmt string) bool {
	fields := strings.Fields(stmt)
	return len(fields) >= 2 &&
		strings.EqualFold(fields[0], "CREATE") &&
		strings.EqualFold(fields[1], "TABLE")
}

func looksLikeForeignKey(stmt string) bool {
	upper := strings.ToUpper(stmt)
	return strings.Contains(upper, "FOREIGN KEY") && strings.Contains(upper, "REFERENCES")
}

func snippet(stmt string) string {
	stmt = strings.Join(strings.Fields(stmt), " ")
	if len(stmt) > 40 {
		return stmt[:40] + "..."
	}
	return stmt
}
