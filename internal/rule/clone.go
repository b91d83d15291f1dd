package rule

import "reflect"

// CloneRule returns an independent copy of a registered rule so that
// settings applied for one run never reach the registry instance. The
// struct is copied field by field; a Configurable copy then has its
// settings reset to the defaults. Non-pointer rules are returned as is.
func CloneRule(r Rule) Rule {
	rv := reflect.ValueOf(r)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return r
	}
	cp := reflect.New(rv.Elem().Type())
	cp.Elem().Set(rv.Elem())
	clone := cp.Interface().(Rule)

	if c, ok := clone.(Configurable); ok {
		_ = c.ApplySettings(c.DefaultSettings())
	}
	return clone
}
