package schema

import "testing"

func TestSchemaTable(t *testing.T) {
	s := &Schema{Tables: []Table{{Name: "Author"}, {Name: "Book"}}}

	tbl, ok := s.Table("Book")
	if !ok || tbl.Name != "Book" {
		t.Errorf("Table(Book) = %+v, %v", tbl, ok)
	}
	if _, ok := s.Table("Ghost"); ok {
		t.Error("Expected no table for an unknown name")
	}
}

func TestTableColumn(t *testing.T) {
	tbl := &Table{Columns: []Column{
		{Name: "id", Type: "INT"},
		{Name: "name", Type: "TEXT"},
	}}

	col, ok := tbl.Column("name")
	if !ok || col.Type != "TEXT" {
		t.Errorf("Column(name) = %+v, %v", col, ok)
	}
	if _, ok := tbl.Column("ghost"); ok {
		t.Error("Expected no column for an unknown name")
	}
}
