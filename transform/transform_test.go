package transform

import (
	"reflect"
	"testing"

	"github.com/umlsql/umlsql/schema"
	"github.com/umlsql/umlsql/uml"
)

func TestToSchemaColumns(t *testing.T) {
	m := &uml.Model{
		Classes: []uml.Class{
			{ID: "c1", Name: "Author", Attributes: []uml.Attribute{
				{Name: "id", Type: uml.Integer},
				{Name: "name", Type: uml.String},
			}},
		},
	}

	s := ToSchema(m)
	if len(s.Tables) != 1 {
		t.Fatalf("Expected 1 table, got %d", len(s.Tables))
	}

	want := []schema.Column{
		{Name: "id", Type: "INT", PrimaryKey: true},
		{Name: "name", Type: "VARCHAR(255)"},
	}
	if !reflect.DeepEqual(s.Tables[0].Columns, want) {
		t.Errorf("Columns = %+v, want %+v", s.Tables[0].Columns, want)
	}
}

func TestToSchemaSyntheticID(t *testing.T) {
	m := &uml.Model{
		Classes: []uml.Class{
			{ID: "c1", Name: "Person", Attributes: []uml.Attribute{
				{Name: "name", Type: uml.String},
			}},
		},
	}

	s := ToSchema(m)
	cols := s.Tables[0].Columns
	if len(cols) != 2 {
		t.Fatalf("Expected 2 columns, got %d", len(cols))
	}
	if cols[0].Name != "id" || cols[0].Type != "INT" || !cols[0].PrimaryKey {
		t.Errorf("Expected synthetic id INT primary key at position 0, got %+v", cols[0])
	}
}

func TestToSchemaCaseInsensitiveID(t *testing.T) {
	m := &uml.Model{
		Classes: []uml.Class{
			{ID: "c1", Name: "Person", Attributes: []uml.Attribute{
				{Name: "ID", Type: uml.Long},
			}},
		},
	}

	s := ToSchema(m)
	cols := s.Tables[0].Columns
	if len(cols) != 1 {
		t.Fatalf("Expected 1 column without injection, got %d", len(cols))
	}
	if !cols[0].PrimaryKey || cols[0].Name != "ID" || cols[0].Type != "BIGINT" {
		t.Errorf("Expected the existing ID attribute to become the primary key, got %+v", cols[0])
	}
}

func twoClassModel(a1, a2 uml.End) *uml.Model {
	return &uml.Model{
		Classes: []uml.Class{
			{ID: "c1", Name: "Author", Attributes: []uml.Attribute{{Name: "id", Type: uml.Integer}}},
			{ID: "c2", Name: "Book", Attributes: []uml.Attribute{{Name: "id", Type: uml.Integer}}},
		},
		Associations: []uml.Association{{Ends: [2]uml.End{a1, a2}}},
	}
}

func TestToSchemaOneToMany(t *testing.T) {
	tests := []struct {
		name     string
		e1, e2   uml.End
		fkTable  string
		fkColumn string
		refTable string
	}{
		{
			name:     "one side declared first",
			e1:       uml.End{TypeRef: "c1", Role: "author", Lower: 1, Upper: 1},
			e2:       uml.End{TypeRef: "c2", Role: "book", Upper: uml.Unbounded},
			fkTable:  "Book",
			fkColumn: "author_id",
			refTable: "Author",
		},
		{
			name:     "many side declared first",
			e1:       uml.End{TypeRef: "c1", Role: "author", Upper: uml.Unbounded},
			e2:       uml.End{TypeRef: "c2", Role: "book", Lower: 1, Upper: 1},
			fkTable:  "Author",
			fkColumn: "book_id",
			refTable: "Book",
		},
		{
			name:     "missing role falls back to the referenced class",
			e1:       uml.End{TypeRef: "c1", Lower: 1, Upper: 1},
			e2:       uml.End{TypeRef: "c2", Upper: uml.Unbounded},
			fkTable:  "Book",
			fkColumn: "author_id",
			refTable: "Author",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ToSchema(twoClassModel(tt.e1, tt.e2))
			if len(s.Tables) != 2 {
				t.Fatalf("Expected 2 tables, got %d", len(s.Tables))
			}

			var fkT, other *schema.Table
			for i := range s.Tables {
				if s.Tables[i].Name == tt.fkTable {
					fkT = &s.Tables[i]
				} else {
					other = &s.Tables[i]
				}
			}
			if fkT == nil {
				t.Fatalf("Table %s not found", tt.fkTable)
			}

			if len(fkT.ForeignKeys) != 1 {
				t.Fatalf("Expected 1 foreign key on %s, got %d", tt.fkTable, len(fkT.ForeignKeys))
			}
			fk := fkT.ForeignKeys[0]
			if fk.Column != tt.fkColumn || fk.RefTable != tt.refTable || fk.RefColumn != "id" {
				t.Errorf("ForeignKey = %+v, want {%s %s id}", fk, tt.fkColumn, tt.refTable)
			}

			last := fkT.Columns[len(fkT.Columns)-1]
			if last.Name != tt.fkColumn || last.Type != "INT" || !last.Nullable {
				t.Errorf("Expected appended nullable INT column %s, got %+v", tt.fkColumn, last)
			}

			if len(other.ForeignKeys) != 0 {
				t.Errorf("Expected no foreign keys on %s, got %+v", other.Name, other.ForeignKeys)
			}
		})
	}
}

func TestToSchemaDefaultBucket(t *testing.T) {
	// 1..1 against 1..1: the first class receives the key, named after
	// the second end's role.
	e1 := uml.End{TypeRef: "c1", Role: "owner", Lower: 1, Upper: 1}
	e2 := uml.End{TypeRef: "c2", Role: "profile", Lower: 1, Upper: 1}

	s := ToSchema(twoClassModel(e1, e2))
	if len(s.Tables) != 2 {
		t.Fatalf("Expected 2 tables, got %d", len(s.Tables))
	}

	author := s.Tables[0]
	if len(author.ForeignKeys) != 1 {
		t.Fatalf("Expected the first class to carry the key, got %+v", author.ForeignKeys)
	}
	fk := author.ForeignKeys[0]
	if fk.Column != "profile_id" || fk.RefTable != "Book" {
		t.Errorf("ForeignKey = %+v, want {profile_id Book id}", fk)
	}
}

func TestToSchemaManyToMany(t *testing.T) {
	e1 := uml.End{TypeRef: "c1", Role: "author", Upper: uml.Unbounded}
	e2 := uml.End{TypeRef: "c2", Role: "book", Upper: uml.Unbounded}

	s := ToSchema(twoClassModel(e1, e2))
	if len(s.Tables) != 3 {
		t.Fatalf("Expected 3 tables, got %d", len(s.Tables))
	}

	want := schema.Table{
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
	}
	if !reflect.DeepEqual(s.Tables[2], want) {
		t.Errorf("Join table = %+v, want %+v", s.Tables[2], want)
	}
}

func TestToSchemaDanglingEnd(t *testing.T) {
	e1 := uml.End{TypeRef: "c1", Upper: 1}
	e2 := uml.End{TypeRef: "ghost", Upper: uml.Unbounded}

	s := ToSchema(twoClassModel(e1, e2))
	if len(s.Tables) != 2 {
		t.Fatalf("Expected 2 tables, got %d", len(s.Tables))
	}
	for _, tbl := range s.Tables {
		if len(tbl.ForeignKeys) != 0 {
			t.Errorf("Expected the association to be dropped, got keys on %s: %+v", tbl.Name, tbl.ForeignKeys)
		}
	}
}

func TestToSchemaDuplicateClassName(t *testing.T) {
	m := &uml.Model{
		Classes: []uml.Class{
			{ID: "t1", Name: "Thing", Attributes: []uml.Attribute{{Name: "a", Type: uml.String}}},
			{ID: "o1", Name: "Other"},
			{ID: "t2", Name: "Thing", Attributes: []uml.Attribute{{Name: "b", Type: uml.String}}},
		},
		Associations: []uml.Association{
			// References the replaced declaration's identifier; both
			// identifiers must keep resolving to the class name.
			{Ends: [2]uml.End{
				{TypeRef: "t1", Lower: 1, Upper: 1},
				{TypeRef: "o1", Upper: uml.Unbounded},
			}},
		},
	}

	s := ToSchema(m)
	if len(s.Tables) != 2 {
		t.Fatalf("Expected 2 tables, got %d", len(s.Tables))
	}

	thing := s.Tables[0]
	if thing.Name != "Thing" {
		t.Fatalf("Expected the replaced table to keep position 0, got %s", thing.Name)
	}
	if len(thing.Columns) != 2 || thing.Columns[1].Name != "b" {
		t.Errorf("Expected the later declaration to win, got %+v", thing.Columns)
	}

	other := s.Tables[1]
	if len(other.ForeignKeys) != 1 || other.ForeignKeys[0].RefTable != "Thing" {
		t.Errorf("Expected Other to reference Thing via the stale identifier, got %+v", other.ForeignKeys)
	}
}

func TestToClassModelCanonical(t *testing.T) {
	s := &schema.Schema{Tables: []schema.Table{
		{Name: "Author", Columns: []schema.Column{
			{Name: "id", Type: "INT", PrimaryKey: true},
			{Name: "name", Type: "VARCHAR(255)"},
		}},
		{
			Name: "Book",
			Columns: []schema.Column{
				{Name: "id", Type: "INT", PrimaryKey: true},
				{Name: "title", Type: "VARCHAR(255)"},
				{Name: "author_id", Type: "INT", Nullable: true},
			},
			ForeignKeys: []schema.ForeignKey{{Column: "author_id", RefTable: "Author", RefColumn: "id"}},
		},
	}}

	m := ToClassModel(s)
	if m.Name != "SQLToUML" {
		t.Errorf("Model name = %q, want SQLToUML", m.Name)
	}
	if len(m.Classes) != 2 {
		t.Fatalf("Expected 2 classes, got %d", len(m.Classes))
	}

	book := m.Classes[1]
	if book.ID != "id_Book" || book.Name != "Book" {
		t.Errorf("Class = %+v, want id_Book/Book", book)
	}
	wantAttrs := []uml.Attribute{
		{Name: "id", Type: uml.Integer},
		{Name: "title", Type: uml.String},
	}
	if !reflect.DeepEqual(book.Attributes, wantAttrs) {
		t.Errorf("Attributes = %+v, want %+v (foreign-key columns must not come back as attributes)", book.Attributes, wantAttrs)
	}

	if len(m.Associations) != 1 {
		t.Fatalf("Expected 1 association, got %d", len(m.Associations))
	}
	want := uml.Association{Ends: [2]uml.End{
		{TypeRef: "id_Author", Role: "author", Lower: 1, Upper: 1},
		{TypeRef: "id_Book", Role: "book", Lower: 0, Upper: uml.Unbounded},
	}}
	if !reflect.DeepEqual(m.Associations[0], want) {
		t.Errorf("Association = %+v, want %+v", m.Associations[0], want)
	}
}

func TestToClassModelUnknownRefTable(t *testing.T) {
	s := &schema.Schema{Tables: []schema.Table{
		{
			Name:        "Book",
			Columns:     []schema.Column{{Name: "id", Type: "INT", PrimaryKey: true}},
			ForeignKeys: []schema.ForeignKey{{Column: "author_id", RefTable: "Ghost", RefColumn: "id"}},
		},
	}}

	m := ToClassModel(s)
	if len(m.Classes) != 1 {
		t.Fatalf("Expected the table to survive, got %d classes", len(m.Classes))
	}
	if len(m.Associations) != 0 {
		t.Errorf("Expected the dangling key to be dropped, got %+v", m.Associations)
	}
}

func joinSchema(secondRef string) *schema.Schema {
	return &schema.Schema{Tables: []schema.Table{
		{Name: "Author", Columns: []schema.Column{{Name: "id", Type: "INT", PrimaryKey: true}}},
		{Name: "Book", Columns: []schema.Column{{Name: "id", Type: "INT", PrimaryKey: true}}},
		{
			Name: "Author_Book_join",
			Join: true,
			Columns: []schema.Column{
				{Name: "author_id", Type: "INT", PrimaryKey: true},
				{Name: "book_id", Type: "INT", PrimaryKey: true},
			},
			ForeignKeys: []schema.ForeignKey{
				{Column: "author_id", RefTable: "Author", RefColumn: "id"},
				{Column: "book_id", RefTable: secondRef, RefColumn: "id"},
			},
		},
	}}
}

func TestToClassModelJoinCollapse(t *testing.T) {
	m := ToClassModel(joinSchema("Book"))

	if len(m.Classes) != 2 {
		t.Fatalf("Expected the join table to collapse, got %d classes", len(m.Classes))
	}
	if len(m.Associations) != 1 {
		t.Fatalf("Expected 1 association, got %d", len(m.Associations))
	}

	want := uml.Association{Ends: [2]uml.End{
		{TypeRef: "id_Author", Role: "author", Lower: 0, Upper: uml.Unbounded},
		{TypeRef: "id_Book", Role: "book", Lower: 0, Upper: uml.Unbounded},
	}}
	if !reflect.DeepEqual(m.Associations[0], want) {
		t.Errorf("Association = %+v, want %+v", m.Associations[0], want)
	}
}

func TestToClassModelJoinFallback(t *testing.T) {
	// One target is missing, so the join table converts as a plain class.
	m := ToClassModel(joinSchema("Ghost"))

	if len(m.Classes) != 3 {
		t.Fatalf("Expected the join table to stay a class, got %d classes", len(m.Classes))
	}
	if len(m.Associations) != 1 {
		t.Fatalf("Expected 1 association for the resolvable key, got %d", len(m.Associations))
	}
	if m.Associations[0].Ends[0].TypeRef != "id_Author" {
		t.Errorf("Association end = %+v, want a reference to id_Author", m.Associations[0].Ends[0])
	}
}
