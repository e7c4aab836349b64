package internal

import (
	"cmp"
	"fmt"
	"reflect"
	"strings"
)

type numClass int

const (
	numNone numClass = iota
	numInt
	numUint
	numFloat
)

func classify(v reflect.Value) numClass {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return numInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return numUint
	case reflect.Float32, reflect.Float64:
		return numFloat
	}
	return numNone
}

func toFloat(v reflect.Value) float64 {
	switch classify(v) {
	case numInt:
		return float64(v.Int())
	case numUint:
		return float64(v.Uint())
	default:
		return v.Float()
	}
}

// numericCompare orders two values when both are numeric, promoting across
// kinds the way untyped constants would.
func numericCompare(a, b any) (int, bool) {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	ka, kb := classify(va), classify(vb)
	if ka == numNone || kb == numNone {
		return 0, false
	}
	switch {
	case ka == numInt && kb == numInt:
		return cmp.Compare(va.Int(), vb.Int()), true
	case ka == numUint && kb == numUint:
		return cmp.Compare(va.Uint(), vb.Uint()), true
	default:
		return cmp.Compare(toFloat(va), toFloat(vb)), true
	}
}

// isEqual is the change-detection and equality-comparison primitive. Numbers
// compare across kinds; everything else compares by dynamic type.
func isEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if c, ok := numericCompare(a, b); ok {
		return c == 0
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta == tb && ta.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// order returns -1, 0 or 1. Values with no defined order are an error, not a
// panic: ordering failures surface through predicate evaluation.
func order(a, b any) (int, error) {
	if c, ok := numericCompare(a, b); ok {
		return c, nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() == reflect.String && vb.Kind() == reflect.String {
		return strings.Compare(va.String(), vb.String()), nil
	}
	return 0, fmt.Errorf("%w: %T and %T", ErrNotOrdered, a, b)
}

// contains implements the membership test: substring for strings, element
// membership for slices and arrays, key presence for maps.
func contains(container, item any) (bool, error) {
	if container == nil {
		return false, fmt.Errorf("%w: nil", ErrNotContainer)
	}
	cv := reflect.ValueOf(container)
	switch cv.Kind() {
	case reflect.String:
		iv := reflect.ValueOf(item)
		if iv.Kind() != reflect.String {
			return false, fmt.Errorf("%w: cannot search %T for %T", ErrNotContainer, container, item)
		}
		return strings.Contains(cv.String(), iv.String()), nil
	case reflect.Slice, reflect.Array:
		for i := 0; i < cv.Len(); i++ {
			if isEqual(cv.Index(i).Interface(), item) {
				return true, nil
			}
		}
		return false, nil
	case reflect.Map:
		iv := reflect.ValueOf(item)
		if !iv.IsValid() || !iv.Type().AssignableTo(cv.Type().Key()) {
			return false, nil
		}
		return cv.MapIndex(iv).IsValid(), nil
	}
	return false, fmt.Errorf("%w: %T", ErrNotContainer, container)
}
