// Package sqlpatch builds parameterized partial UPDATE statements from a
// sparse set of column values.
//
// Each table is declared once with its updatable columns in a fixed order.
// The generated statement always binds the row key as $1 and the present
// columns as $2..$N in declaration order, so the same input always yields
// the same SQL text:
//
//	UPDATE games SET likes = $2, price = $3 WHERE id = $1 RETURNING *
package sqlpatch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrEmptyUpdate is returned when no column in the sparse set passes its
	// presence test. Callers must not touch storage in that case.
	ErrEmptyUpdate = errors.New("sqlpatch: no updatable fields supplied")

	// ErrUnknownColumn is returned when the sparse set names a column that is
	// not declared as updatable on the table, including the key column.
	ErrUnknownColumn = errors.New("sqlpatch: unknown column")
)

// Presence decides whether a supplied value takes part in the SET clause.
type Presence int

const (
	// IfSet includes the column whenever a value was supplied. Zero values
	// such as 0, false and "" are legitimate updates.
	IfSet Presence = iota
	// IfNonEmpty includes the column only when the supplied value is not the
	// empty string.
	IfNonEmpty
)

// Column is one updatable column of a table.
type Column struct {
	Name     string
	Presence Presence
}

// Table is the fixed update schema of one entity.
type Table struct {
	name    string
	key     string
	columns []Column
}

// NewTable declares a table keyed by "id" with the given updatable columns.
func NewTable(name string, columns ...Column) Table {
	return Table{name: name, key: "id", columns: columns}
}

func (t Table) Name() string { return t.name }

// Columns returns a copy of the updatable columns in declaration order.
func (t Table) Columns() []Column {
	return append([]Column(nil), t.columns...)
}

// Values is a sparse column -> value mapping. A missing key means
// "leave unchanged".
type Values map[string]any

// Statement is the SQL text and its positional arguments.
type Statement struct {
	SQL  string
	Args []any
}

// Update builds the UPDATE ... RETURNING * statement for the row identified
// by id. Args[0] is always id.
func (t Table) Update(id any, values Values) (Statement, error) {
	for col := range values {
		if !t.updatable(col) {
			return Statement{}, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, t.name, col)
		}
	}

	args := []any{id}
	sets := make([]string, 0, len(t.columns))
	for _, c := range t.columns {
		v, ok := values[c.Name]
		if !ok || !c.present(v) {
			continue
		}
		args = append(args, v)
		sets = append(sets, c.Name+" = $"+strconv.Itoa(len(args)))
	}
	if len(sets) == 0 {
		return Statement{}, ErrEmptyUpdate
	}

	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(t.name)
	b.WriteString(" SET ")
	b.WriteString(strings.Join(sets, ", "))
	b.WriteString(" WHERE ")
	b.WriteString(t.key)
	b.WriteString(" = $1 RETURNING *")

	return Statement{SQL: b.String(), Args: args}, nil
}

func (t Table) updatable(col string) bool {
	for _, c := range t.columns {
		if c.Name == col {
			return true
		}
	}
	return false
}

func (c Column) present(v any) bool {
	if v == nil {
		return false
	}
	if c.Presence == IfNonEmpty {
		if s, ok := v.(string); ok && s == "" {
			return false
		}
	}
	return true
}
