package generator

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/umlsql/umlsql/schema"
)

// GenerateSchemaXML serializes a relational schema as schema markup:
// a database root holding one table element per table, each with its
// column elements followed by its foreignKey elements.
func GenerateSchemaXML(s *schema.Schema) (string, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	database := doc.CreateElement("database")
	for i := range s.Tables {
		t := &s.Tables[i]
		table := database.CreateElement("table")
		table.CreateAttr("name", t.Name)

		for _, col := range t.Columns {
			c := table.CreateElement("column")
			c.CreateAttr("name", col.Name)
			c.CreateAttr("type", col.Type)
			c.CreateAttr("primaryKey", strconv.FormatBool(col.PrimaryKey))
			c.CreateAttr("nullable", strconv.FormatBool(col.Nullable))
		}

		for _, fk := range t.ForeignKeys {
			f := table.CreateElement("foreignKey")
			f.CreateAttr("targetTable", fk.RefTable)
			ref := f.CreateElement("reference")
			ref.CreateAttr("localColumn", fk.Column)
			ref.CreateAttr("foreignColumn", fk.RefColumn)
		}
	}

	doc.Indent(2)
	return doc.WriteToString()
}
