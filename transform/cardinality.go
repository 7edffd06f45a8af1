package transform

import "github.com/umlsql/umlsql/uml"

type Kind string

const (
	OneToOne   Kind = "one-to-one"
	OneToMany  Kind = "one-to-many"
	ManyToMany Kind = "many-to-many"
)

// Classify resolves the upper bounds of an association's two ends into a
// relationship kind. Bounds follow uml.End: a positive limit or
// uml.Unbounded.
//
// Pairs matching neither the many-to-many nor the one-to-many conditions
// (1..1 against 1..1, or two bounded upper limits) land in the one-to-one
// bucket, which is realized like one-to-many with the first class carrying
// the foreign key. No uniqueness constraint is added for that bucket.
func Classify(u1, u2 int) Kind {
	switch {
	case u1 == uml.Unbounded && u2 == uml.Unbounded,
		u1 == uml.Unbounded && u2 > 1,
		u2 == uml.Unbounded && u1 > 1:
		return ManyToMany
	case u1 == 1 && (u2 == uml.Unbounded || u2 > 1),
		u2 == 1 && (u1 == uml.Unbounded || u1 > 1):
		return OneToMany
	default:
		return OneToOne
	}
}
