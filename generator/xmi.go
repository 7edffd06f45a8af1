package generator

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/umlsql/umlsql/uml"
)

const (
	xmiNamespace = "http://schema.omg.org/spec/XMI/2.1"
	umlNamespace = "http://www.eclipse.org/uml2/3.0.0/UML"
)

// GenerateUML serializes a class model as an XMI 2.1 document. Classes
// come first with their owned attributes, then associations with both
// owned ends. Unbounded uppers are written as -1.
func GenerateUML(m *uml.Model) (string, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	model := doc.CreateElement("uml:Model")
	model.CreateAttr("xmlns:xmi", xmiNamespace)
	model.CreateAttr("xmlns:uml", umlNamespace)
	model.CreateAttr("xmi:version", "2.1")
	model.CreateAttr("name", m.Name)

	for i := range m.Classes {
		c := &m.Classes[i]
		class := model.CreateElement("packagedElement")
		class.CreateAttr("xmi:type", "uml:Class")
		class.CreateAttr("xmi:id", c.ID)
		class.CreateAttr("name", c.Name)

		for _, a := range c.Attributes {
			attr := class.CreateElement("ownedAttribute")
			attr.CreateAttr("xmi:id", fmt.Sprintf("%s_%s", c.ID, a.Name))
			attr.CreateAttr("name", a.Name)
			attr.CreateAttr("type", string(a.Type))
		}
	}

	for i := range m.Associations {
		id := fmt.Sprintf("assoc_%d", i+1)
		assoc := model.CreateElement("packagedElement")
		assoc.CreateAttr("xmi:type", "uml:Association")
		assoc.CreateAttr("xmi:id", id)

		for j, end := range m.Associations[i].Ends {
			el := assoc.CreateElement("ownedEnd")
			el.CreateAttr("xmi:id", fmt.Sprintf("%s_end%d", id, j+1))
			el.CreateAttr("type", end.TypeRef)
			el.CreateAttr("name", end.Role)
			el.CreateAttr("lower", strconv.Itoa(end.Lower))
			el.CreateAttr("upper", strconv.Itoa(end.Upper))
		}
	}

	doc.Indent(2)
	return doc.WriteToString()
}
