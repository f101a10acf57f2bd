package envariability

import (
	"fmt"
	"reflect"
	"strings"
)

const (
	envColumn       = "env"
	emptyCell       = "---"
	columnSeparator = " | "
)

// Column pairs an element property with its header in the documentation
// table.
type Column struct {
	Property string
	Name     string
}

// Columns returns custom unchanged when it is non-empty, failing with a
// DuplicateColumnError when two columns share a property. Otherwise it
// returns the env column followed by every descriptor property, each
// titled with its own name.
func Columns(custom []Column) ([]Column, error) {
	if len(custom) > 0 {
		seen := make(map[string]bool, len(custom))
		for _, c := range custom {
			if seen[c.Property] {
				return nil, &DuplicateColumnError{Property: c.Property}
			}
			seen[c.Property] = true
		}
		return custom, nil
	}
	columns := []Column{{Property: envColumn, Name: envColumn}}
	for _, name := range descriptorProperties() {
		columns = append(columns, Column{Property: name, Name: name})
	}
	return columns, nil
}

// Document renders schema as a Markdown table with one row per element,
// depth first in group order. The env column holds the element's
// environment variable name. The table ends with its last row; a schema
// without elements renders the header only.
func Document(schema any, opts ...Option) (string, error) {
	o := newOptions(opts)
	columns, err := Columns(o.Columns)
	if err != nil {
		return "", err
	}

	rows, err := fold(schema, o, o.Prefix, rootParent, folder[string]{
		leaf: func(el *Element, _, envPath string, _ *Options) (string, error) {
			if !el.Type.Valid() {
				return "", &UnknownTypeError{Type: el.Type, Env: envPath}
			}
			return documentRow(el, envPath, columns), nil
		},
		empty: func() string {
			return ""
		},
		reduce: func(acc string, _ string, part string) string {
			if strings.TrimSpace(part) == "" {
				return acc
			}
			if strings.TrimSpace(acc) == "" {
				return part
			}
			return acc + "\n" + part
		},
		seal: func(acc string, _ *Options) string {
			return acc
		},
	})
	if err != nil {
		return "", err
	}

	names := make([]string, len(columns))
	separators := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
		separators[i] = emptyCell
	}
	table := "\n" + tableRow(names) + "\n" + tableRow(separators)
	if rows != "" {
		table += "\n" + rows
	}
	return table, nil
}

func documentRow(el *Element, envPath string, columns []Column) string {
	cells := make([]string, len(columns))
	for i, c := range columns {
		var v any
		if c.Property == envColumn {
			v = envPath
		} else {
			v, _ = el.property(c.Property)
		}
		cells[i] = renderCell(v)
	}
	return tableRow(cells)
}

func tableRow(cells []string) string {
	return "| " + strings.Join(cells, columnSeparator) + " |"
}

// renderCell formats a property value. Absent and zero values render as the
// empty cell marker.
func renderCell(v any) string {
	if v == nil {
		return emptyCell
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return emptyCell
		}
		items := make([]string, rv.Len())
		for i := range items {
			items[i] = fmt.Sprint(rv.Index(i).Interface())
		}
		return strings.Join(items, ",")
	case reflect.Map, reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return emptyCell
		}
	default:
		if rv.IsZero() {
			return emptyCell
		}
	}
	return fmt.Sprint(v)
}
