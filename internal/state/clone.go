package state

import "reflect"

// Clone/equality semantics for state values.
//
// The tree holds plain data: string/bool/number scalars, model structs without
// pointer fields, slices of those, and nested map[string]any. Both functions
// below are total over that shape and are part of the container's contract
// (see the tests pinning them), not an implementation accident.

// deepClone returns a copy of v that shares no maps or slices with v.
// Scalars and structs are returned by value; state structs carry no pointers,
// so a value copy is a deep copy.
func deepClone(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = deepClone(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = deepClone(e)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(reflect.ValueOf(deepClone(rv.Index(i).Interface())))
		}
		return out.Interface()
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), reflect.ValueOf(deepClone(iter.Value().Interface())))
		}
		return out.Interface()
	}
	return v
}

// valueEqual implements the write short-circuit comparison:
//   - nil equals nil;
//   - slices compare element-wise with the same rule, recursively;
//   - maps (and other reference kinds) compare by identity only, never by content;
//   - comparable scalars compare by ==;
//   - everything else (structs, mismatched types) is not equal.
//
// The object-identity-only rule is deliberate: two distinct objects with
// identical contents must still count as a change so that replacing a record
// in place produces a notification.
func valueEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	av := reflect.ValueOf(a)
	bv := reflect.ValueOf(b)

	if av.Kind() == reflect.Slice && bv.Kind() == reflect.Slice {
		if av.Type() != bv.Type() || av.Len() != bv.Len() {
			return false
		}
		for i := 0; i < av.Len(); i++ {
			if !valueEqual(av.Index(i).Interface(), bv.Index(i).Interface()) {
				return false
			}
		}
		return true
	}

	switch av.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return bv.Kind() == av.Kind() && av.Type() == bv.Type() && av.Pointer() == bv.Pointer()
	case reflect.Struct:
		// Objects never compare structurally.
		return false
	}

	if av.Type() != bv.Type() || !av.Type().Comparable() {
		return false
	}
	return a == b
}
