package json

import (
	"sort"
	"strconv"
	"strings"
)

var jsonEscapes = map[byte]string{
	'"':  `\"`,
	'\\': `\\`,
	'\b': `\b`,
	'\f': `\f`,
	'\n': `\n`,
	'\r': `\r`,
	'\t': `\t`,
}

func writeEscapedString(sb *strings.Builder, s string) {
	sb.WriteByte('"')

	for i := 0; i < len(s); i++ {
		ch := s[i]
		if esc, ok := jsonEscapes[ch]; ok {
			sb.WriteString(esc)
			continue
		}

		if ch < 0x20 {
			sb.WriteString(`\u00`)

			if ch < 0x10 {
				sb.WriteByte('0')
			}

			sb.WriteString(strconv.FormatInt(int64(ch), 16))
			continue
		}

		sb.WriteByte(ch)
	}

	sb.WriteByte('"')
}

func writeNumber(sb *strings.Builder, n Number) {
	switch n.Kind() {
	case Int64:
		sb.WriteString(strconv.FormatInt(n.AsInt64(), 10))
	case Uint64:
		sb.WriteString(strconv.FormatUint(n.AsUint64(), 10))
	default:
		sb.WriteString(strconv.FormatFloat(n.AsFloat64(), 'g', -1, 64))
	}
}

func writeValue(sb *strings.Builder, v Value) {
	switch v.Kind() {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		b, _ := v.AsBool()
		sb.WriteString(strconv.FormatBool(b))
	case KindNumber:
		n, _ := v.AsNumber()
		writeNumber(sb, n)
	case KindString:
		s, _ := v.AsString()
		writeEscapedString(sb, s)
	case KindArray:
		arr, _ := v.AsArray()
		sb.WriteByte('[')

		for i, elem := range arr {
			if i > 0 {
				sb.WriteByte(',')
			}

			writeValue(sb, elem)
		}

		sb.WriteByte(']')
	case KindObject:
		obj, _ := v.AsObject()

		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		sb.WriteByte('{')

		for i, k := range keys {
			if i > 0 {
				sb.WriteByte(',')
			}

			writeEscapedString(sb, k)
			sb.WriteByte(':')
			writeValue(sb, obj[k])
		}

		sb.WriteByte('}')
	default:
		sb.WriteString(`"` + v.ErrorCode().String() + `"`)
	}
}

// Format serializes v to compact JSON text. Object keys are emitted in
// sorted order so output is deterministic despite the value model's
// unspecified iteration order.
func Format(v Value) string {
	var sb strings.Builder

	writeValue(&sb, v)

	return sb.String()
}
