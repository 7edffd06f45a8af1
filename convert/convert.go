// Package convert exposes the four text-to-text conversions between
// UML class models (XMI 2.1), SQL DDL scripts, and schema markup.
// Each conversion parses its input, maps it through the shared model
// types, and serializes the result. A malformed input document fails
// the whole conversion; elements the parsers cannot resolve are
// dropped individually instead.
package convert

import (
	"github.com/umlsql/umlsql/generator"
	"github.com/umlsql/umlsql/loader"
	"github.com/umlsql/umlsql/transform"
)

// UMLToSQL converts an XMI 2.1 class model into a SQL DDL script.
func UMLToSQL(input string) (string, error) {
	model, err := loader.ParseUML(input)
	if err != nil {
		return "", err
	}
	return generator.GenerateDDL(transform.ToSchema(model)), nil
}

// SQLToUML converts a SQL DDL script into an XMI 2.1 class model.
func SQLToUML(input string) (string, error) {
	sch, err := loader.ParseDDL(input)
	if err != nil {
		return "", err
	}
	return generator.GenerateUML(transform.ToClassModel(sch))
}

// UMLToSchemaXML converts an XMI 2.1 class model into schema markup.
func UMLToSchemaXML(input string) (string, error) {
	model, err := loader.ParseUML(input)
	if err != nil {
		return "", err
	}
	return generator.GenerateSchemaXML(transform.ToSchema(model))
}

// SchemaXMLToUML converts schema markup into an XMI 2.1 class model.
func SchemaXMLToUML(input string) (string, error) {
	sch, err := loader.ParseSchemaXML(input)
	if err != nil {
		return "", err
	}
	return generator.GenerateUML(transform.ToClassModel(sch))
}
