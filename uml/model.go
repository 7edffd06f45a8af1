package uml

// Unbounded is the upper-multiplicity sentinel for "*" (no maximum).
const Unbounded = -1

// Primitive is a class-attribute type from the closed UML primitive set.
type Primitive string

const (
	String  Primitive = "String"
	Integer Primitive = "Integer"
	Boolean Primitive = "Boolean"
	Float   Primitive = "Float"
	Double  Primitive = "Double"
	Long    Primitive = "Long"
	Date    Primitive = "Date"
)

// ParsePrimitive maps a type spelling from an exchange document onto the
// primitive set. Unknown or absent spellings degrade to String.
func ParsePrimitive(s string) Primitive {
	switch p := Primitive(s); p {
	case String, Integer, Boolean, Float, Double, Long, Date:
		return p
	default:
		return String
	}
}

type Model struct {
	Name         string
	Classes      []Class
	Associations []Association
}

// Class returns the class with the given identifier.
func (m *Model) Class(id string) (*Class, bool) {
	for i := range m.Classes {
		if m.Classes[i].ID == id {
			return &m.Classes[i], true
		}
	}
	return nil, false
}

type Class struct {
	ID         string
	Name       string
	Attributes []Attribute
}

type Attribute struct {
	Name string
	Type Primitive
}

// Association is a binary association; anything with a different number of
// ends is not representable and gets dropped during parsing.
type Association struct {
	Ends [2]End
}

// End references a class by identifier and carries an optional role name
// plus the multiplicity bounds. Upper is a positive bound or Unbounded.
type End struct {
	TypeRef string
	Role    string
	Lower   int
	Upper   int
}
