package generator

import (
	"strings"
	"testing"

	"github.com/umlsql/umlsql/schema"
)

func TestGenerateSchemaXML(t *testing.T) {
	want := `<?xml version="1.0" encoding="UTF-8"?>
<database>
  <table name="Author">
    <column name="id" type="INT" primaryKey="true" nullable="false"/>
    <column name="name" type="VARCHAR(255)" primaryKey="false" nullable="false"/>
  </table>
  <table name="Book">
    <column name="id" type="INT" primaryKey="true" nullable="false"/>
    <column name="title" type="VARCHAR(255)" primaryKey="false" nullable="false"/>
    <column name="author_id" type="INT" primaryKey="false" nullable="true"/>
    <foreignKey targetTable="Author">
      <reference localColumn="author_id" foreignColumn="id"/>
    </foreignKey>
  </table>
</database>`

	got, err := GenerateSchemaXML(authorBookSchema())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.TrimSpace(got) != want {
		t.Errorf("Generated document:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerateSchemaXMLJoinTable(t *testing.T) {
	s := &schema.Schema{Tables: []schema.Table{
		{
			Name: "Author_Book_join",
			Join: true,
			Columns: []schema.Column{
				{Name: "author_id", Type: "INT", PrimaryKey: true},
				{Name: "book_id", Type: "INT", PrimaryKey: true},
			},
			ForeignKeys: []schema.ForeignKey{
				{Column: "author_id", RefTable: "Author", RefColumn: "id"},
				{Column: "book_id", RefTable: "Book", RefColumn: "id"},
			},
		},
	}}

	want := `<?xml version="1.0" encoding="UTF-8"?>
<database>
  <table name="Author_Book_join">
    <column name="author_id" type="INT" primaryKey="true" nullable="false"/>
    <column name="book_id" type="INT" primaryKey="true" nullable="false"/>
    <foreignKey targetTable="Author">
      <reference localColumn="author_id" foreignColumn="id"/>
    </foreignKey>
    <foreignKey targetTable="Book">
      <reference localColumn="book_id" foreignColumn="id"/>
    </foreignKey>
  </table>
</database>`

	got, err := GenerateSchemaXML(s)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.TrimSpace(got) != want {
		t.Errorf("Generated document:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerateSchemaXMLEmptySchema(t *testing.T) {
	want := `<?xml version="1.0" encoding="UTF-8"?>
<database/>`

	got, err := GenerateSchemaXML(&schema.Schema{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.TrimSpace(got) != want {
		t.Errorf("Generated document:\n%s\nwant:\n%s", got, want)
	}
}
