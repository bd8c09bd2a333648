package querybuilder

import (
	"errors"
	"reflect"
	"strings"
	"sync"
)

var (
	errNilModel   = errors.New("model cannot be nil")
	errNotStruct  = errors.New("model must be struct")
	errNoColumns  = errors.New("model has no db columns")
	columnsByType sync.Map // reflect.Type -> []modelColumn
)

type modelColumn struct {
	name  string
	index int
}

// InsertModel builds an INSERT from the exported db-tagged fields of model.
// Fields tagged `db:"-"` or `db:"name,readonly"` (server-generated columns
// such as a bigserial) are left out.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	value, err := structValue(model)
	if err != nil {
		return "", nil, err
	}

	columns := modelColumns(value.Type())
	if len(columns) == 0 {
		return "", nil, errNoColumns
	}

	names := make([]string, len(columns))
	values := make([]any, len(columns))
	for i, c := range columns {
		names[i] = c.name
		values[i] = value.Field(c.index).Interface()
	}
	return InsertInto(table).Columns(names...).Values(values...).Suffix(suffix).ToSQL()
}

func structValue(model any) (reflect.Value, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return reflect.Value{}, errNilModel
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return reflect.Value{}, errNotStruct
	}
	return value, nil
}

func modelColumns(typ reflect.Type) []modelColumn {
	if cached, ok := columnsByType.Load(typ); ok {
		return cached.([]modelColumn)
	}

	columns := make([]modelColumn, 0, typ.NumField())
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(field.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" || hasOption(opts, "readonly") {
			continue
		}
		columns = append(columns, modelColumn{name: name, index: i})
	}

	actual, _ := columnsByType.LoadOrStore(typ, columns)
	return actual.([]modelColumn)
}

func hasOption(opts, want string) bool {
	for opt := range strings.SplitSeq(opts, ",") {
		if strings.TrimSpace(opt) == want {
			return true
		}
	}
	return false
}
