// FILE: benchconf/container.go
package benchconf

import (
	"fmt"
	"reflect"
	"sort"
)

// entry holds one explicit value together with the descriptor it was stored
// under, so clone and merge can honor the descriptor's copy policy without a
// registry round-trip.
type entry struct {
	desc  *Descriptor
	value any
}

type childEntry struct {
	desc  *Descriptor
	child *Container
}

// Container is a bag of explicit values keyed by descriptor, the unit a
// benchmark run mode or job is configured through. A container starts mutable,
// accumulates explicit values from code, files, or the environment, and is
// frozen before being handed to an execution plan.
//
// A container assumes a single logical writer while mutable; it takes no
// internal locks. Once frozen it is safe for unsynchronized concurrent reads,
// since no further writes can occur.
type Container struct {
	values   map[descriptorKey]entry
	children map[descriptorKey]childEntry
	frozen   bool
}

// NewContainer returns an empty, mutable container.
func NewContainer() *Container {
	return &Container{
		values:   make(map[descriptorKey]entry),
		children: make(map[descriptorKey]childEntry),
	}
}

// HasValue reports whether an explicit value was set for d and never cleared.
// It distinguishes user intent from resolved defaults: Resolve may return the
// same value either way, HasValue says which.
func (c *Container) HasValue(d *Descriptor) bool {
	if d.Nested() {
		_, ok := c.children[d.key()]
		return ok
	}
	_, ok := c.values[d.key()]
	return ok
}

// Explicit returns the explicit value for d, failing with ErrNotSet if none
// was stored. Fallbacks and resolvers never apply here; use Resolve for the
// effective value. For group descriptors Explicit returns the child container,
// materializing it on first access as Child does.
func (c *Container) Explicit(d *Descriptor) (any, error) {
	if d.Nested() {
		return c.Child(d)
	}
	e, ok := c.values[d.key()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotSet, d.FullID())
	}
	return e.value, nil
}

// Set stores an explicit value for d, failing with ErrFrozen on a frozen
// container and with ErrInvalidValue if the value is not assignable to the
// descriptor's value type. A nil value is a legitimate explicit value,
// distinct from unset. Group descriptors accept a *Container, which the
// container adopts as its child.
func (c *Container) Set(d *Descriptor, value any) error {
	if c.frozen {
		return fmt.Errorf("%w: cannot set %s", ErrFrozen, d.FullID())
	}
	if d.Nested() {
		child, ok := value.(*Container)
		if !ok {
			return fmt.Errorf("%w: %s takes a *Container, got %T", ErrInvalidValue, d.FullID(), value)
		}
		c.children[d.key()] = childEntry{desc: d, child: child}
		return nil
	}
	if value != nil && !reflect.TypeOf(value).AssignableTo(d.ValueType()) {
		return fmt.Errorf("%w: %s wants %s, got %T", ErrInvalidValue, d.FullID(), d.ValueType(), value)
	}
	c.values[d.key()] = entry{desc: d, value: value}
	return nil
}

// Clear removes the explicit value for d, reverting it to unset so that
// resolution falls through to the resolver or fallback again. Fails with
// ErrFrozen on a frozen container. Clearing an already-unset descriptor is a
// no-op.
func (c *Container) Clear(d *Descriptor) error {
	if c.frozen {
		return fmt.Errorf("%w: cannot clear %s", ErrFrozen, d.FullID())
	}
	if d.Nested() {
		delete(c.children, d.key())
		return nil
	}
	delete(c.values, d.key())
	return nil
}

// Child returns the nested container scoped to the group descriptor d,
// creating it on first access while this container is mutable. On a frozen
// container an absent child fails with ErrNotSet, since materializing one
// would be a mutation. Fails with ErrNotNested for plain descriptors.
func (c *Container) Child(d *Descriptor) (*Container, error) {
	if !d.Nested() {
		return nil, fmt.Errorf("%w: %s", ErrNotNested, d.FullID())
	}
	if e, ok := c.children[d.key()]; ok {
		return e.child, nil
	}
	if c.frozen {
		return nil, fmt.Errorf("%w: %s", ErrNotSet, d.FullID())
	}
	child := NewContainer()
	c.children[d.key()] = childEntry{desc: d, child: child}
	return child, nil
}

// Freeze makes the container and every nested child permanently read-only.
// The transition is one-way and idempotent; there is no thaw. To derive a
// variant of a frozen container, Clone it into a new mutable one. Returns the
// container for chaining.
func (c *Container) Freeze() *Container {
	if c.frozen {
		return c
	}
	c.frozen = true
	for _, e := range c.children {
		e.child.Freeze()
	}
	return c
}

// IsFrozen reports whether the container has been frozen. Consumers check this
// before mutating to avoid tripping ErrFrozen.
func (c *Container) IsFrozen() bool { return c.frozen }

// Clone returns a new mutable container holding copies of this container's
// explicit values. Values under descriptors marked WithNoCopy are shared by
// reference; other slice and map values are copied one level deep, everything
// else copies by assignment. Nested children are cloned recursively. The
// original may be frozen or mutable; the clone is always mutable.
func (c *Container) Clone() *Container {
	out := NewContainer()
	for k, e := range c.values {
		out.values[k] = entry{desc: e.desc, value: copyValue(e.desc, e.value)}
	}
	for k, e := range c.children {
		out.children[k] = childEntry{desc: e.desc, child: e.child.Clone()}
	}
	return out
}

// ExplicitDescriptors returns the descriptors that have explicit values on
// this container, including materialized groups, sorted by full id.
func (c *Container) ExplicitDescriptors() []*Descriptor {
	out := make([]*Descriptor, 0, len(c.values)+len(c.children))
	for _, e := range c.values {
		out = append(out, e.desc)
	}
	for _, e := range c.children {
		out = append(out, e.desc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullID() < out[j].FullID() })
	return out
}

// copyValue applies the descriptor's copy policy to one value.
func copyValue(d *Descriptor, v any) any {
	if d.NoCopy() || v == nil {
		return v
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		cp := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		reflect.Copy(cp, rv)
		return cp.Interface()
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		cp := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			cp.SetMapIndex(iter.Key(), iter.Value())
		}
		return cp.Interface()
	default:
		return v
	}
}
