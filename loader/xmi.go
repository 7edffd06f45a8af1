package loader

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/umlsql/umlsql/uml"
)

// Attr reads an attribute that may appear namespace-qualified or bare,
// like the xmi:id and xmi:type attributes of exchange documents. The
// qualified form wins when both are present.
func Attr(el *etree.Element, key string) string {
	if v := el.SelectAttrValue("xmi:"+key, ""); v != "" {
		return v
	}
	return el.SelectAttrValue(key, "")
}

// ParseUML reads a class model from exchange-format markup. Malformed
// markup fails the whole parse; recognized-but-unsupported constructs are
// dropped at the finest granularity: classes without an identifier or
// name, attributes without a name, and associations without exactly two
// ends all vanish silently while the rest of the document is kept.
func ParseUML(input string) (*uml.Model, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(input); err != nil {
		return nil, fmt.Errorf("parsing UML document: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("parsing UML document: no root element")
	}

	classes, assocs := PackagedElements(root)

	m := &uml.Model{Name: root.SelectAttrValue("name", "")}
	for _, el := range classes {
		if c, ok := parseClass(el); ok {
			m.Classes = append(m.Classes, c)
		}
	}
	for _, el := range assocs {
		if a, ok := parseAssociation(el); ok {
			m.Associations = append(m.Associations, a)
		}
	}
	return m, nil
}

// PackagedElements walks the whole tree, depth- and order-independent,
// and sorts every packagedElement into class and association
// declarations by its type discriminator. Elements with any other
// discriminator are not supported and are ignored.
func PackagedElements(root *etree.Element) (classes, assocs []*etree.Element) {
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		if el.Tag == "packagedElement" {
			switch Attr(el, "type") {
			case "uml:Class":
				classes = append(classes, el)
			case "uml:Association":
				assocs = append(assocs, el)
			}
		}
		for _, child := range el.ChildElements() {
			walk(child)
		}
	}
	walk(root)
	return classes, assocs
}

func parseClass(el *etree.Element) (uml.Class, bool) {
	id := Attr(el, "id")
	name := el.SelectAttrValue("name", "")
	if id == "" || name == "" {
		return uml.Class{}, false
	}

	c := uml.Class{ID: id, Name: name}
	for _, attr := range el.SelectElements("ownedAttribute") {
		attrName := attr.SelectAttrValue("name", "")
		if attrName == "" {
			continue
		}
		c.Attributes = append(c.Attributes, uml.Attribute{
			Name: attrName,
			Type: uml.ParsePrimitive(attr.SelectAttrValue("type", "")),
		})
	}
	return c, true
}

func parseAssociation(el *etree.Element) (uml.Association, bool) {
	ends := el.SelectElements("ownedEnd")
	if len(ends) != 2 {
		return uml.Association{}, false
	}
	return uml.Association{
		Ends: [2]uml.End{parseEnd(ends[0]), parseEnd(ends[1])},
	}, true
}

func parseEnd(el *etree.Element) uml.End {
	end := uml.End{
		TypeRef: el.SelectAttrValue("type", ""),
		Role:    el.SelectAttrValue("name", ""),
	}

	// A malformed lower bound is as good as an absent one.
	if n, err := strconv.Atoi(el.SelectAttrValue("lower", "0")); err == nil {
		end.Lower = n
	}

	// Absent upper bounds default to 1; anything non-numeric ("*", "-1",
	// an empty string) means unbounded.
	raw := "1"
	if a := el.SelectAttr("upper"); a != nil {
		raw = a.Value
	}
	end.Upper = uml.Unbounded
	if isDigits(raw) {
		end.Upper, _ = strconv.Atoi(raw)
	}

	return end
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
