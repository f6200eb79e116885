package toml

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

// FromYAML folds a YAML document into the shared TOML value model: a
// deliberately partial bridge (not a full YAML parser in its own
// right) covering the scalar/sequence/mapping shapes that have a
// direct TOML equivalent. A root document that is not itself a mapping
// is wrapped as {"value": ...} since a TOML document's root must be a
// table.
//
// Grounded on MacroPower-x/magicschema's use of
// github.com/goccy/go-yaml (parser.ParseBytes + the ast package's node
// type switch over Mapping/MappingValue/Sequence/Bool/Integer/Float/
// String/Tag/Anchor nodes, in generator.go and infer.go).
func FromYAML(doc []byte) (Value, error) {
	file, err := parser.ParseBytes(doc, parser.ParseComments)
	if err != nil {
		return Value{}, fmt.Errorf("toml: parsing yaml source: %w", err)
	}

	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return TableValue(nil), nil
	}

	v, err := convertYAMLNode(file.Docs[0].Body)
	if err != nil {
		return Value{}, err
	}

	if v.Kind() != KindTable {
		return TableValue(map[string]Value{"value": v}), nil
	}

	return v, nil
}

func unwrapYAMLNode(node ast.Node) ast.Node {
	for {
		switch n := node.(type) {
		case *ast.TagNode:
			node = n.Value
		case *ast.AnchorNode:
			node = n.Value
		default:
			return node
		}
	}
}

func convertYAMLNode(node ast.Node) (Value, error) {
	node = unwrapYAMLNode(node)
	if node == nil {
		return String("null"), nil
	}

	switch n := node.(type) {
	case *ast.MappingValueNode:
		return convertYAMLMapping(nil, []*ast.MappingValueNode{n})
	case *ast.MappingNode:
		return convertYAMLMapping(n, nil)
	case *ast.SequenceNode:
		elems := make([]Value, 0, len(n.Values))

		for _, elemNode := range n.Values {
			elem, err := convertYAMLNode(elemNode)
			if err != nil {
				return Value{}, err
			}

			elems = append(elems, elem)
		}

		return ArrayValue(elems, true), nil
	case *ast.BoolNode:
		return Boolean(strings.TrimSpace(node.String()) == "true"), nil
	case *ast.NullNode:
		return String("null"), nil
	case *ast.IntegerNode, *ast.FloatNode, *ast.InfinityNode, *ast.NanNode:
		v, err := numberFromToken(strings.TrimSpace(node.String()))
		if err != nil {
			return Value{}, fmt.Errorf("toml: converting yaml number: %w", err)
		}

		return v, nil
	default:
		return String(node.String()), nil
	}
}

func convertYAMLMapping(mn *ast.MappingNode, extra []*ast.MappingValueNode) (Value, error) {
	var values []*ast.MappingValueNode
	if mn != nil {
		values = mn.Values
	}

	values = append(values, extra...)

	fields := map[string]Value{}

	for _, mvn := range values {
		key := mvn.Key.String()

		v, err := convertYAMLNode(mvn.Value)
		if err != nil {
			return Value{}, err
		}

		fields[key] = v
	}

	return TableValue(fields), nil
}
