package schema

type Schema struct {
	Tables []Table
}

// Table returns the table with the given name.
func (s *Schema) Table(name string) (*Table, bool) {
	for i := range s.Tables {
		if s.Tables[i].Name == name {
			return &s.Tables[i], true
		}
	}
	return nil, false
}

type Table struct {
	Name        string
	Columns     []Column
	ForeignKeys []ForeignKey
	Join        bool // realizes a many-to-many association; two-column composite key
}

// Column returns the column with the given name.
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

type Column struct {
	Name       string
	Type       string
	PrimaryKey bool
	Nullable   bool
}

type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
}
