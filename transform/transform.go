package transform

import (
	"strings"

	"github.com/umlsql/umlsql/schema"
	"github.com/umlsql/umlsql/typemap"
	"github.com/umlsql/umlsql/uml"
)

// ToSchema maps a class model onto a relational schema. Classes become
// tables in declaration order; associations become join tables or
// foreign-key columns depending on their cardinality. An association end
// referencing an unknown class identifier drops the association, never the
// classes. A later class declaration with an already-seen name replaces
// the earlier table's definition but keeps its position.
func ToSchema(m *uml.Model) *schema.Schema {
	s := &schema.Schema{}

	tableIdx := map[string]int{} // table name -> index into s.Tables

	for i := range m.Classes {
		c := &m.Classes[i]
		t := buildTable(c)
		if j, ok := tableIdx[c.Name]; ok {
			s.Tables[j] = t
			continue
		}
		tableIdx[c.Name] = len(s.Tables)
		s.Tables = append(s.Tables, t)
	}

	for _, a := range m.Associations {
		e1, e2 := a.Ends[0], a.Ends[1]
		c1, ok1 := m.Class(e1.TypeRef)
		c2, ok2 := m.Class(e2.TypeRef)
		if !ok1 || !ok2 {
			continue
		}
		n1, n2 := c1.Name, c2.Name

		switch Classify(e1.Upper, e2.Upper) {
		case ManyToMany:
			s.Tables = append(s.Tables, joinTable(n1, n2))
		case OneToMany:
			// The foreign key lives on the many side and is named after
			// the role of the end pointing at the one side.
			if e1.Upper == 1 {
				addForeignKey(s, tableIdx, n2, e1.Role, n1)
			} else {
				addForeignKey(s, tableIdx, n1, e2.Role, n2)
			}
		default:
			// Ambiguous bucket: the first class always receives the key.
			addForeignKey(s, tableIdx, n1, e2.Role, n2)
		}
	}

	return s
}

// buildTable derives a table from a class. The attribute named "id"
// (case-insensitive) becomes the primary key; when no such attribute
// exists, a synthetic INT primary key is inserted at position 0.
func buildTable(c *uml.Class) schema.Table {
	t := schema.Table{Name: c.Name}

	hasID := false
	for _, a := range c.Attributes {
		col := schema.Column{Name: a.Name, Type: typemap.ToSQLType(a.Type)}
		if strings.EqualFold(a.Name, "id") {
			col.PrimaryKey = true
			hasID = true
		}
		t.Columns = append(t.Columns, col)
	}
	if !hasID {
		id := schema.Column{Name: "id", Type: "INT", PrimaryKey: true}
		t.Columns = append([]schema.Column{id}, t.Columns...)
	}

	return t
}

func joinTable(n1, n2 string) schema.Table {
	c1 := strings.ToLower(n1) + "_id"
	c2 := strings.ToLower(n2) + "_id"
	return schema.Table{
		Name: n1 + "_" + n2 + "_join",
		Join: true,
		Columns: []schema.Column{
			{Name: c1, Type: "INT", PrimaryKey: true},
			{Name: c2, Type: "INT", PrimaryKey: true},
		},
		ForeignKeys: []schema.ForeignKey{
			{Column: c1, RefTable: n1, RefColumn: "id"},
			{Column: c2, RefTable: n2, RefColumn: "id"},
		},
	}
}

// addForeignKey appends a nullable INT column and a foreign key to the
// named table, referencing refName's id column. The column is named after
// the role when one was given, the referenced class otherwise.
func addForeignKey(s *schema.Schema, tableIdx map[string]int, tableName, role, refName string) {
	i, ok := tableIdx[tableName]
	if !ok {
		return
	}

	base := role
	if base == "" {
		base = strings.ToLower(refName)
	}
	col := base + "_id"

	t := &s.Tables[i]
	t.Columns = append(t.Columns, schema.Column{Name: col, Type: "INT", Nullable: true})
	t.ForeignKeys = append(t.ForeignKeys, schema.ForeignKey{Column: col, RefTable: refName, RefColumn: "id"})
}

// ToClassModel reconstructs a class model from a relational schema. The
// result is canonical rather than faithful: every foreign key comes back
// as an association with multiplicity (1,1) on the referenced side and
// (0,*) on the referencing side, and foreign-key columns are represented
// by that association instead of being repeated as plain attributes.
// Tables marked as join tables collapse into many-to-many associations
// instead of classes when both of their targets resolve to plain tables.
// Foreign keys to unknown tables are dropped; both entities survive.
func ToClassModel(s *schema.Schema) *uml.Model {
	m := &uml.Model{Name: "SQLToUML"}

	classIDs := map[string]string{} // table name -> class id
	for i := range s.Tables {
		classIDs[s.Tables[i].Name] = "id_" + s.Tables[i].Name
	}

	// joins holds the tables elided into associations. A join table
	// whose targets are missing or are themselves join tables converts
	// as a plain class, so no end can dangle.
	joins := map[string]bool{}
	for i := range s.Tables {
		t := &s.Tables[i]
		if !t.Join || len(t.ForeignKeys) != 2 {
			continue
		}
		r1, ok1 := s.Table(t.ForeignKeys[0].RefTable)
		r2, ok2 := s.Table(t.ForeignKeys[1].RefTable)
		if !ok1 || !ok2 || r1.Join || r2.Join {
			continue
		}
		joins[t.Name] = true
	}

	for _, t := range s.Tables {
		if joins[t.Name] {
			continue
		}

		fkCols := map[string]bool{}
		for _, fk := range t.ForeignKeys {
			fkCols[fk.Column] = true
		}

		c := uml.Class{ID: classIDs[t.Name], Name: t.Name}
		for _, col := range t.Columns {
			if fkCols[col.Name] {
				continue
			}
			c.Attributes = append(c.Attributes, uml.Attribute{
				Name: col.Name,
				Type: typemap.ToPrimitive(col.Type),
			})
		}
		m.Classes = append(m.Classes, c)
	}

	for _, t := range s.Tables {
		if joins[t.Name] {
			fk1, fk2 := t.ForeignKeys[0], t.ForeignKeys[1]
			m.Associations = append(m.Associations, uml.Association{
				Ends: [2]uml.End{
					{TypeRef: classIDs[fk1.RefTable], Role: strings.ToLower(fk1.RefTable), Lower: 0, Upper: uml.Unbounded},
					{TypeRef: classIDs[fk2.RefTable], Role: strings.ToLower(fk2.RefTable), Lower: 0, Upper: uml.Unbounded},
				},
			})
			continue
		}

		for _, fk := range t.ForeignKeys {
			refID, ok := classIDs[fk.RefTable]
			if !ok || joins[fk.RefTable] {
				continue
			}
			m.Associations = append(m.Associations, uml.Association{
				Ends: [2]uml.End{
					{TypeRef: refID, Role: strings.ToLower(fk.RefTable), Lower: 1, Upper: 1},
					{TypeRef: classIDs[t.Name], Role: strings.ToLower(t.Name), Lower: 0, Upper: uml.Unbounded},
				},
			})
		}
	}

	return m
}
