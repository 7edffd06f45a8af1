package typemap

import (
	"strings"

	"github.com/umlsql/umlsql/uml"
)

var sqlTypes = map[uml.Primitive]string{
	uml.String:  "VARCHAR(255)",
	uml.Integer: "INT",
	uml.Boolean: "BOOLEAN",
	uml.Float:   "FLOAT",
	uml.Double:  "DOUBLE",
	uml.Long:    "BIGINT",
	uml.Date:    "DATE",
}

// ToSQLType returns the SQL column type for a UML primitive. Anything
// outside the mapping table falls back to VARCHAR(255).
func ToSQLType(p uml.Primitive) string {
	if t, ok := sqlTypes[p]; ok {
		return t
	}
	return "VARCHAR(255)"
}

// ToPrimitive classifies a SQL column type back onto the primitive set by
// case-insensitive substring, so dialect variants (BIGINT, TINYTEXT, REAL)
// classify without being enumerated. The mapping is lossy on purpose:
// DOUBLE and REAL both come back as Float, unrecognized types as String.
func ToPrimitive(sqlType string) uml.Primitive {
	t := strings.ToUpper(sqlType)
	switch {
	case strings.Contains(t, "INT"):
		return uml.Integer
	case strings.Contains(t, "CHAR"), strings.Contains(t, "TEXT"):
		return uml.String
	case strings.Contains(t, "FLOAT"), strings.Contains(t, "DOUBLE"), strings.Contains(t, "REAL"):
		return uml.Float
	case strings.Contains(t, "BOOLEAN"):
		return uml.Boolean
	case strings.Contains(t, "DATE"):
		return uml.Date
	default:
		return uml.String
	}
}
