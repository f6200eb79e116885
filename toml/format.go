package toml

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

func writeEscapedString(sb *strings.Builder, s string) {
	sb.WriteByte('"')

	for i := 0; i < len(s); i++ {
		switch ch := s[i]; ch {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteByte(ch)
		}
	}

	sb.WriteByte('"')
}

func writeScalar(sb *strings.Builder, v Value) {
	switch v.Kind() {
	case KindBoolean:
		b, _ := v.AsBoolean()
		sb.WriteString(strconv.FormatBool(b))
	case KindInteger:
		i, _ := v.AsInteger()
		sb.WriteString(strconv.FormatInt(i, 10))
	case KindFloat:
		f, _ := v.AsFloat()

		switch {
		case math.IsInf(f, 1):
			sb.WriteString("inf")
		case math.IsInf(f, -1):
			sb.WriteString("-inf")
		case math.IsNaN(f):
			sb.WriteString("nan")
		default:
			s := strconv.FormatFloat(f, 'g', -1, 64)
			if !strings.ContainsAny(s, ".eE") {
				s += ".0"
			}

			sb.WriteString(s)
		}
	case KindString:
		s, _ := v.AsString()
		writeEscapedString(sb, s)
	case KindDatetime:
		dt, _ := v.AsDatetime()
		sb.WriteString(dt.String())
	case KindArray:
		a, _ := v.AsArray()
		sb.WriteByte('[')

		for i, elem := range a.Elems() {
			if i > 0 {
				sb.WriteString(", ")
			}

			writeScalar(sb, elem)
		}

		sb.WriteByte(']')
	case KindTable:
		t, _ := v.AsTable()
		sb.WriteByte('{')

		keys := sortedKeys(t.Fields())

		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(k)
			sb.WriteString(" = ")
			writeScalar(sb, t.Fields()[k])
		}

		sb.WriteByte('}')
	}
}

func sortedKeys(fields map[string]Value) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// writeTableSection prints path's "[section]" header (skipped at the
// document root, where path is empty) followed by its fields.
func writeTableSection(sb *strings.Builder, path []string, t *Table) {
	if len(path) > 0 {
		sb.WriteString("[")
		sb.WriteString(strings.Join(path, "."))
		sb.WriteString("]\n")
	}

	writeTableFields(sb, path, t)
}

// writeTableFields prints t's scalar keys inline, then recurses into
// nested tables and array-of-tables rows with their own headers. Used
// both by writeTableSection (after its own header) and directly for an
// array-of-tables row, whose "[[path]]" header the caller already
// wrote.
func writeTableFields(sb *strings.Builder, path []string, t *Table) {
	scalarKeys := make([]string, 0, len(t.fields))
	tableKeys := make([]string, 0, len(t.fields))
	arrayTableKeys := make([]string, 0, len(t.fields))

	for k, v := range t.fields {
		switch {
		case v.Kind() == KindTable && !v.tbl.locked:
			tableKeys = append(tableKeys, k)
		case v.Kind() == KindArray && v.arr.IsTableArray():
			arrayTableKeys = append(arrayTableKeys, k)
		default:
			scalarKeys = append(scalarKeys, k)
		}
	}

	sort.Strings(scalarKeys)
	sort.Strings(tableKeys)
	sort.Strings(arrayTableKeys)

	for _, k := range scalarKeys {
		sb.WriteString(k)
		sb.WriteString(" = ")
		writeScalar(sb, t.fields[k])
		sb.WriteByte('\n')
	}

	for _, k := range tableKeys {
		childPath := make([]string, len(path), len(path)+1)
		copy(childPath, path)
		writeTableSection(sb, append(childPath, k), t.fields[k].tbl)
	}

	for _, k := range arrayTableKeys {
		arr, _ := t.fields[k].AsArray()

		childPath := make([]string, len(path), len(path)+1)
		copy(childPath, path)
		childPath = append(childPath, k)

		for _, row := range arr.Elems() {
			sb.WriteString("[[")
			sb.WriteString(strings.Join(childPath, "."))
			sb.WriteString("]]\n")

			rowTable, _ := row.AsTable()
			writeTableFields(sb, childPath, rowTable)
		}
	}
}

// Format serializes v, whose root must be a table, to TOML text: one
// canonical layout (sorted keys, nested tables as `[section]`
// headers), not a configurable pretty-printer.
func Format(v Value) string {
	t, ok := v.AsTable()
	if !ok {
		return ""
	}

	var sb strings.Builder

	writeTableSection(&sb, nil, t)

	return sb.String()
}
