package domain

import "time"

// Payload is a raw key/value shape crossing a core boundary: a decoded request
// body enriched by the transport, or a row returned by a storage adapter.
type Payload map[string]any

type valueType int

const (
	stringValue valueType = iota
	timeValue
)

type field struct {
	name string
	typ  valueType
}

func str(name string) field  { return field{name: name, typ: stringValue} }
func date(name string) field { return field{name: name, typ: timeValue} }

// check runs the two-stage contract: every key must be present before any
// value is type-checked. A nil value or an empty string counts as absent.
func check(entity string, p Payload, fields ...field) error {
	for _, f := range fields {
		v, ok := p[f.name]
		if !ok || v == nil || v == "" {
			return &ValidationError{Entity: entity, Kind: KindMissingProperty, Field: f.name}
		}
	}
	for _, f := range fields {
		if !f.typ.matches(p[f.name]) {
			return &ValidationError{Entity: entity, Kind: KindDataType, Field: f.name}
		}
	}
	return nil
}

func (t valueType) matches(v any) bool {
	switch t {
	case stringValue:
		_, ok := v.(string)
		return ok
	case timeValue:
		switch tv := v.(type) {
		case time.Time:
			return !tv.IsZero()
		case *time.Time:
			return tv != nil && !tv.IsZero()
		}
		return false
	}
	return false
}

// The getters below must only be called after check succeeded for the key.

func (p Payload) str(key string) string { return p[key].(string) }

func (p Payload) time(key string) time.Time {
	switch v := p[key].(type) {
	case *time.Time:
		return v.UTC()
	default:
		return v.(time.Time).UTC()
	}
}
