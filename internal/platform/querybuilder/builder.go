package querybuilder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrIncomplete is returned when a builder is missing a required clause.
var ErrIncomplete = errors.New("incomplete statement")

// statement accumulates SQL text and its bound arguments. Placeholders are
// numbered in the order values are bound.
type statement struct {
	sql  strings.Builder
	args []any
}

func (s *statement) write(parts ...string) {
	for _, p := range parts {
		s.sql.WriteString(p)
	}
}

func (s *statement) bind(value any) {
	s.args = append(s.args, value)
	s.sql.WriteByte('$')
	s.sql.WriteString(strconv.Itoa(len(s.args)))
}

func (s *statement) clause(keyword string, parts []string) {
	if len(parts) == 0 {
		return
	}
	s.write(" ", keyword, " ", strings.Join(parts, ", "))
}

func (s *statement) where(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			s.write(" WHERE ")
		} else {
			s.write(" AND ")
		}
		c.render(s)
	}
}

func (s *statement) suffix(sql string) {
	if sql != "" {
		s.write(" ", sql)
	}
}

func (s *statement) done() (string, []any, error) {
	return s.sql.String(), s.args, nil
}

func require(kind string, checks ...string) error {
	for i := 0; i+1 < len(checks); i += 2 {
		if strings.TrimSpace(checks[i+1]) == "" {
			return fmt.Errorf("%w: %s %s is required", ErrIncomplete, kind, checks[i])
		}
	}
	return nil
}

// Condition is one predicate of a WHERE clause; multiple conditions are ANDed.
type Condition interface {
	render(s *statement)
}

type eq struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return eq{column: column, value: value}
}

func (c eq) render(s *statement) {
	s.write(c.column, " = ")
	s.bind(c.value)
}

type expr struct {
	sql  string
	args []any
}

// Expr embeds raw SQL; each ? binds the next argument. Extra ? marks
// without a matching argument are written through unchanged.
func Expr(sql string, args ...any) Condition {
	return expr{sql: sql, args: args}
}

func (c expr) render(s *statement) {
	rest := c.sql
	for _, arg := range c.args {
		before, after, found := strings.Cut(rest, "?")
		s.write(before)
		if !found {
			return
		}
		s.bind(arg)
		rest = after
	}
	s.write(rest)
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
	suffix  string
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

// Suffix is appended verbatim, e.g. FOR UPDATE.
func (b *SelectBuilder) Suffix(sql string) *SelectBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if err := require("select", "columns", strings.Join(b.columns, ""), "table", b.table); err != nil {
		return "", nil, err
	}

	var s statement
	s.write("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	s.where(b.where)
	s.clause("ORDER BY", b.orderBy)
	if b.limit > 0 {
		s.write(" LIMIT ", strconv.Itoa(b.limit))
	}
	s.suffix(b.suffix)
	return s.done()
}

type InsertBuilder struct {
	table   string
	columns []string
	values  []any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.values = append([]any(nil), values...)
	return b
}

func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if err := require("insert", "table", b.table, "columns", strings.Join(b.columns, "")); err != nil {
		return "", nil, err
	}
	if len(b.values) != len(b.columns) {
		return "", nil, fmt.Errorf("%w: insert has %d values for %d columns", ErrIncomplete, len(b.values), len(b.columns))
	}

	var s statement
	s.write("INSERT INTO ", b.table, " (", strings.Join(b.columns, ", "), ") VALUES (")
	for i, v := range b.values {
		if i > 0 {
			s.write(", ")
		}
		s.bind(v)
	}
	s.write(")")
	s.suffix(b.suffix)
	return s.done()
}

type assignment struct {
	column string
	value  any
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if err := require("update", "table", b.table); err != nil {
		return "", nil, err
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("%w: update has nothing to set", ErrIncomplete)
	}

	var s statement
	s.write("UPDATE ", b.table, " SET ")
	for i, a := range b.sets {
		if i > 0 {
			s.write(", ")
		}
		s.write(a.column, " = ")
		s.bind(a.value)
	}
	s.where(b.where)
	return s.done()
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

// ToSQL refuses an unconditioned delete.
func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if err := require("delete", "table", b.table); err != nil {
		return "", nil, err
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("%w: delete without a condition", ErrIncomplete)
	}

	var s statement
	s.write("DELETE FROM ", b.table)
	s.where(b.where)
	return s.done()
}
