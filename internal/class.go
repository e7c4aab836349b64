package internal

import (
	"fmt"
)

// Class is the registry of fields declared on one owner type. Registration
// happens once, at type-definition time, before any instance is constructed
// and before any predicate referencing the fields is evaluated.
type Class struct {
	name   string
	fields []*Field
	byAttr map[string]*Field
}

func NewClass(name string) *Class {
	return &Class{
		name:   name,
		byAttr: make(map[string]*Field),
	}
}

func (c *Class) Name() string { return c.name }

// Fields returns the declared fields in registration order.
func (c *Class) Fields() []*Field { return c.fields }

// AddField names the field and assigns its per-instance slot. An attribute
// name collision or re-registration of an owned field is a configuration
// error.
func (c *Class) AddField(attr string, f *Field) error {
	if _, ok := c.byAttr[attr]; ok {
		return fmt.Errorf("%w: %s.%s declared twice", ErrFieldConfiguration, c.name, attr)
	}
	if f.index >= 0 {
		return fmt.Errorf("%w: %s is already declared on a class", ErrFieldConfiguration, f)
	}
	f.SetNames(c.name, attr)
	f.index = len(c.fields)
	c.fields = append(c.fields, f)
	c.byAttr[attr] = f
	return nil
}
