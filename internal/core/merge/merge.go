// Package merge implements the fill-only-if-empty reconciliation policy: a
// matched entity only ever gains values for fields it has not populated, and
// protected or primary-name fields are never touched.
package merge

import (
	"reflect"
	"sort"

	"github.com/ideagraph/loom/internal/core/model"
)

// IsEmpty reports whether a field value counts as unpopulated. Zero and false
// are real values; only nil, empty strings and empty collections are empty.
func IsEmpty(v interface{}) bool {
	if v == nil {
		return true
	}
	switch x := v.(type) {
	case string:
		return x == ""
	case []string:
		return len(x) == 0
	case []interface{}:
		return len(x) == 0
	case map[string]interface{}:
		return len(x) == 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// PopulatedFields returns the sorted keys of data whose values are non-empty.
func PopulatedFields(data map[string]interface{}) []string {
	var keys []string
	for k, v := range data {
		if !IsEmpty(v) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// BuildFieldUpdate computes the minimal fill set for one matched entity: each
// candidate field is staged unless it is protected, the primary name field,
// already populated, or empty in the candidate itself. A nil return means
// there is nothing to fill, which is a normal outcome.
func BuildFieldUpdate(entityID string, t model.NodeType, populated []string, candidate map[string]interface{}) *model.FieldUpdate {
	populatedSet := map[string]bool{}
	for _, f := range populated {
		populatedSet[f] = true
	}
	nameField := model.PrimaryNameField(t)

	fields := map[string]interface{}{}
	for key, value := range candidate {
		if model.ProtectedFields[key] || key == nameField {
			continue
		}
		if populatedSet[key] || IsEmpty(value) {
			continue
		}
		fields[key] = value
	}

	if len(fields) == 0 {
		return nil
	}
	return &model.FieldUpdate{EntityID: entityID, Type: t, Fields: fields}
}
