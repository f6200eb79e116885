package toml

import (
	stderrors "errors"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Sentinel causes a [Collector] wraps with location/path context via
// pkgerrors.Wrap before handing them to the decoder, which re-wraps
// them a final time into a [ParseError]. Callers that only care about
// the category can still errors.Is against these.
var (
	ErrKeyConflict       = stderrors.New("toml: key already defined")
	ErrTableRedefined    = stderrors.New("toml: table redefined")
	ErrInlineTableLocked = stderrors.New("toml: inline table cannot be extended")
	ErrNotATableArray    = stderrors.New("toml: key is not an array of tables")
)

type collectorMode int

const (
	modeGlobal collectorMode = iota
	modeStdTable
	modeArrayTable
)

// Collector is the document-assembly state machine: it tracks the
// root table, the current section target, and any pending
// array-of-tables element, switching among three modes as the decoder
// walks `[section]`/`[[section]]` headers and key/value lines.
//
// Grounded on
// original_source/leviathan/config_parser/toml/collector.hpp's
// collector class (m_global/m_table/m_array/m_mode,
// switch_to_std_table/switch_to_array_table/add_entry/collect/dispose).
// Go's GC replaces the source's explicit `delete m_table`/`new
// value(table())` dance in collect(): a fresh *Table is simply
// allocated for the next row and the old reference is dropped.
type Collector struct {
	global *Table
	table  *Table
	array  *Array
	mode   collectorMode
}

// NewCollector returns a Collector positioned at the document root.
func NewCollector() *Collector {
	g := newTable()
	g.defined = true

	return &Collector{global: g, table: g, mode: modeGlobal}
}

// collect flushes the table currently being filled into the pending
// array-of-tables, if one is active.
func (c *Collector) collect() {
	if c.mode == modeArrayTable && c.table != nil {
		c.array.Append(tableValue(c.table))
		c.array = nil
		c.table = nil
	}
}

// tryGeneratePathTable walks keys[:len(keys)-1] under super, creating
// implicit (undefined) intermediate tables as needed, and returns the
// table the final key should be resolved against.
func tryGeneratePathTable(keys []string, super *Table) (*Table, error) {
	for i := 0; i < len(keys)-1; i++ {
		k := keys[i]

		existing, ok := super.fields[k]
		if !ok {
			nt := newTable()
			super.fields[k] = tableValue(nt)
			super = nt

			continue
		}

		if existing.Kind() != KindTable {
			return nil, pkgerrors.Wrapf(ErrKeyConflict, "key %q is not a table", k)
		}

		if existing.tbl.locked {
			return nil, pkgerrors.Wrapf(ErrInlineTableLocked, "cannot extend inline table %q", k)
		}

		super = existing.tbl
	}

	return super, nil
}

// SwitchToStdTable flushes any pending array-table row and moves the
// current section target to the table named by keys, creating
// intermediate tables as needed. The final table must not already be
// defined, inline, or a non-table value.
func (c *Collector) SwitchToStdTable(keys []string) error {
	c.collect()
	c.mode = modeStdTable

	super, err := tryGeneratePathTable(keys, c.global)
	if err != nil {
		return err
	}

	last := keys[len(keys)-1]

	existing, ok := super.fields[last]
	if !ok {
		nt := newTable()
		nt.defined = true
		super.fields[last] = tableValue(nt)
		c.table = nt

		return nil
	}

	if existing.Kind() != KindTable {
		return pkgerrors.Wrapf(ErrKeyConflict, "section %q is not a table", strings.Join(keys, "."))
	}

	t := existing.tbl
	if t.locked {
		return pkgerrors.Wrapf(ErrInlineTableLocked, "section %q is an inline table", strings.Join(keys, "."))
	}

	if t.defined {
		return pkgerrors.Wrapf(ErrTableRedefined, "section %q redefined", strings.Join(keys, "."))
	}

	t.defined = true
	c.table = t

	return nil
}

// SwitchToArrayTable flushes any pending array-table row and begins a
// fresh row in the array-of-tables named by keys, creating the array
// (and intermediate tables) on first use.
func (c *Collector) SwitchToArrayTable(keys []string) error {
	c.collect()
	c.mode = modeArrayTable

	super, err := tryGeneratePathTable(keys, c.global)
	if err != nil {
		return err
	}

	last := keys[len(keys)-1]

	existing, ok := super.fields[last]
	if !ok {
		na := &Array{}
		super.fields[last] = Value{kind: KindArray, arr: na}
		c.array = na
	} else {
		if existing.Kind() != KindArray || existing.arr.locked {
			return pkgerrors.Wrapf(ErrNotATableArray, "section %q is not an array of tables", strings.Join(keys, "."))
		}

		c.array = existing.arr
	}

	c.table = newTable()

	return nil
}

// AddEntry inserts val at the path named by keys under the current
// section target, creating implicit intermediate tables as needed. The
// final key must not already be present.
func (c *Collector) AddEntry(keys []string, val Value) error {
	super, err := tryGeneratePathTable(keys, c.table)
	if err != nil {
		return err
	}

	last := keys[len(keys)-1]
	if _, exists := super.fields[last]; exists {
		return pkgerrors.Wrapf(ErrKeyConflict, "key %q already defined", last)
	}

	super.fields[last] = val

	return nil
}

// Dispose flushes any pending array-table row and returns the
// completed document as a table Value.
func (c *Collector) Dispose() Value {
	c.collect()

	return tableValue(c.global)
}

// classifyCollectorError maps a wrapped collector sentinel to the
// matching [ErrorKind] so the decoder can fold it into a [ParseError].
func classifyCollectorError(err error) ErrorKind {
	switch {
	case stderrors.Is(err, ErrTableRedefined):
		return TableRedefinition
	case stderrors.Is(err, ErrInlineTableLocked):
		return InlineTableExtension
	case stderrors.Is(err, ErrKeyConflict), stderrors.Is(err, ErrNotATableArray):
		return KeyConflict
	default:
		return IllegalTable
	}
}
