package lifecycle

import (
	"fmt"
	"reflect"
)

// FieldValues reads the named db-tagged columns from an entity struct.
// Embedded structs are walked recursively, matching how repositories map
// entities to rows. Returns an error if any requested column has no
// matching db tag; a descriptor naming a missing column is a programming
// error, not a runtime condition.
func FieldValues(entity any, fields []string) (map[string]any, error) {
	all := collectByTag(reflect.ValueOf(entity))

	values := make(map[string]any, len(fields))
	for _, field := range fields {
		v, ok := all[field]
		if !ok {
			return nil, fmt.Errorf("entity %T has no db-tagged field %q", entity, field)
		}
		values[field] = v
	}
	return values, nil
}

func collectByTag(rv reflect.Value) map[string]any {
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	rt := rv.Type()
	res := make(map[string]any, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		if sf.Anonymous {
			for k, v := range collectByTag(rv.Field(i)) {
				res[k] = v
			}
			continue
		}
		tag := sf.Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		res[tag] = rv.Field(i).Interface()
	}
	return res
}
