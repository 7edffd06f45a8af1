package loader

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/umlsql/umlsql/schema"
)

// ParseSchemaXML reads a relational schema from schema markup: a database
// root with table children carrying column and foreignKey elements.
// Tables without a name and columns without a name are dropped silently;
// a foreignKey without a target table or a reference child is dropped as
// well, keeping the table itself.
func ParseSchemaXML(input string) (*schema.Schema, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(input); err != nil {
		return nil, fmt.Errorf("parsing schema document: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("parsing schema document: no root element")
	}

	s := &schema.Schema{}
	tableIdx := map[string]int{} // table name -> index into s.Tables
	for _, tbl := range root.SelectElements("table") {
		name := tbl.SelectAttrValue("name", "")
		if name == "" {
			continue
		}
		t := schema.Table{Name: name}

		for _, col := range tbl.SelectElements("column") {
			colName := col.SelectAttrValue("name", "")
			if colName == "" {
				continue
			}
			c := schema.Column{
				Name: colName,
				Type: col.SelectAttrValue("type", ""),
			}
			c.PrimaryKey = parseBool(col.SelectAttrValue("primaryKey", ""), false)
			// Nullability defaults to true, but a primary key never is.
			c.Nullable = !c.PrimaryKey && parseBool(col.SelectAttrValue("nullable", ""), true)
			t.Columns = append(t.Columns, c)
		}

		for _, fk := range tbl.SelectElements("foreignKey") {
			target := fk.SelectAttrValue("targetTable", "")
			ref := fk.SelectElement("reference")
			if target == "" || ref == nil {
				continue
			}
			refCol := ref.SelectAttrValue("foreignColumn", "")
			if refCol == "" {
				refCol = "id"
			}
			t.ForeignKeys = append(t.ForeignKeys, schema.ForeignKey{
				Column:    ref.SelectAttrValue("localColumn", ""),
				RefTable:  target,
				RefColumn: refCol,
			})
		}

		// A repeated table name replaces the earlier definition.
		if j, exists := tableIdx[name]; exists {
			s.Tables[j] = t
			continue
		}
		tableIdx[name] = len(s.Tables)
		s.Tables = append(s.Tables, t)
	}

	return s, nil
}

func parseBool(raw string, dflt bool) bool {
	if raw == "" {
		return dflt
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return dflt
	}
	return b
}
