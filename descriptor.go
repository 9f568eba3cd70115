// FILE: benchconf/descriptor.go
package benchconf

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// ResolverFunc computes a derived default for an unset descriptor. It receives
// the container being resolved and the descriptor's fallback as the current
// value, and may read sibling descriptors on the container to derive a result.
//
// Resolvers must not mutate the container. The resolver graph must also be
// acyclic: a resolver that reads a descriptor whose own resolver reads back
// into the first one recurses without bound. Neither constraint is enforced at
// runtime; both are caller contracts.
type ResolverFunc func(c *Container, fallback any) any

// Descriptor is the immutable, process-wide registration of one named, typed
// setting. Descriptors are created once at startup through New or NewGroup and
// never change afterwards.
type Descriptor struct {
	owner      string
	id         string
	valueType  reflect.Type
	fallback   any
	resolver   ResolverFunc
	noCopy     bool
	childOwner string // non-empty iff this descriptor holds a child container
}

// descriptorKey is the identity a container stores values under. Two
// descriptors are the same setting iff owner and id match; the value type
// plays no part in identity.
type descriptorKey struct {
	owner string
	id    string
}

// containerType is the value type reported by group descriptors.
var containerType = reflect.TypeOf((*Container)(nil))

// Option customizes a descriptor at registration time.
type Option func(*Descriptor)

// WithResolver attaches a computed-default function, used by Resolve when no
// explicit value is set.
func WithResolver(fn ResolverFunc) Option {
	return func(d *Descriptor) { d.resolver = fn }
}

// WithNoCopy marks values that carry external identity (loggers, toolchain
// handles). Clone and Merge share such values by reference instead of copying.
func WithNoCopy() Option {
	return func(d *Descriptor) { d.noCopy = true }
}

// registry holds every descriptor declared in the process. Registration
// happens during startup; afterwards the registry is read-only, so concurrent
// readers need no coordination beyond the mutex taken here.
var registry = struct {
	mu      sync.RWMutex
	byKey   map[descriptorKey]*Descriptor
	byOwner map[string][]*Descriptor
}{
	byKey:   make(map[descriptorKey]*Descriptor),
	byOwner: make(map[string][]*Descriptor),
}

// New declares a setting named id on the container type owner and registers
// it process-wide. fallback is the value Resolve returns when nothing else
// applies; it may be nil, which is still distinct from "unset".
//
// New fails with ErrInvalidDescriptor if id or owner is empty or not a valid
// bare key, or if valueType is nil, and with ErrDuplicateDescriptor if the
// (owner, id) pair is already registered.
func New(owner, id string, valueType reflect.Type, fallback any, opts ...Option) (*Descriptor, error) {
	if valueType == nil {
		return nil, fmt.Errorf("%w: %s.%s has no value type", ErrInvalidDescriptor, owner, id)
	}
	d := &Descriptor{
		owner:     owner,
		id:        id,
		valueType: valueType,
		fallback:  fallback,
	}
	for _, opt := range opts {
		opt(d)
	}
	return register(d)
}

// NewGroup declares a setting whose value is itself a container of settings
// declared on childOwner. Group descriptors enable nested resolution: a
// container materializes one child container per group on first access.
func NewGroup(owner, id, childOwner string, opts ...Option) (*Descriptor, error) {
	if !isValidKeySegment(childOwner) {
		return nil, fmt.Errorf("%w: %s.%s has invalid child owner %q", ErrInvalidDescriptor, owner, id, childOwner)
	}
	d := &Descriptor{
		owner:      owner,
		id:         id,
		valueType:  containerType,
		childOwner: childOwner,
	}
	for _, opt := range opts {
		opt(d)
	}
	return register(d)
}

// MustNew is New that panics on error, for package-level declaration blocks.
func MustNew(owner, id string, valueType reflect.Type, fallback any, opts ...Option) *Descriptor {
	d, err := New(owner, id, valueType, fallback, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// MustNewGroup is NewGroup that panics on error.
func MustNewGroup(owner, id, childOwner string, opts ...Option) *Descriptor {
	d, err := NewGroup(owner, id, childOwner, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

func register(d *Descriptor) (*Descriptor, error) {
	if d.id == "" {
		return nil, fmt.Errorf("%w: empty id on owner %q", ErrInvalidDescriptor, d.owner)
	}
	if !isValidKeySegment(d.owner) {
		return nil, fmt.Errorf("%w: invalid owner %q", ErrInvalidDescriptor, d.owner)
	}
	if !isValidKeySegment(d.id) {
		return nil, fmt.Errorf("%w: invalid id %q on owner %q", ErrInvalidDescriptor, d.id, d.owner)
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	k := d.key()
	if _, exists := registry.byKey[k]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateDescriptor, d.FullID())
	}
	registry.byKey[k] = d
	registry.byOwner[d.owner] = append(registry.byOwner[d.owner], d)
	return d, nil
}

// Lookup returns the registered descriptor for (owner, id), if any. It is the
// binding point for string-keyed sources such as settings files and
// environment variables.
func Lookup(owner, id string) (*Descriptor, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	d, ok := registry.byKey[descriptorKey{owner: owner, id: id}]
	return d, ok
}

// Registered returns all descriptors declared on owner, sorted by id.
func Registered(owner string) []*Descriptor {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	out := make([]*Descriptor, len(registry.byOwner[owner]))
	copy(out, registry.byOwner[owner])
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Owner returns the name of the container type declaring this setting.
func (d *Descriptor) Owner() string { return d.owner }

// ID returns the setting name, unique within its owner.
func (d *Descriptor) ID() string { return d.id }

// FullID returns the stable display identity "Owner.id".
func (d *Descriptor) FullID() string { return d.owner + "." + d.id }

// ValueType returns the semantic type of values this setting holds. Group
// descriptors report the container type.
func (d *Descriptor) ValueType() reflect.Type { return d.valueType }

// Fallback returns the default used when no explicit value or resolver applies.
func (d *Descriptor) Fallback() any { return d.fallback }

// Nested reports whether the value is itself a container of child settings.
func (d *Descriptor) Nested() bool { return d.childOwner != "" }

// ChildOwner returns the owner name of the nested settings, or "" for plain
// descriptors.
func (d *Descriptor) ChildOwner() string { return d.childOwner }

// NoCopy reports whether clone and merge share this setting's values by
// reference.
func (d *Descriptor) NoCopy() bool { return d.noCopy }

// Equal reports whether two descriptors name the same setting. Identity is
// (owner, id) only; value types do not participate.
func (d *Descriptor) Equal(other *Descriptor) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.owner == other.owner && d.id == other.id
}

func (d *Descriptor) String() string { return d.FullID() }

func (d *Descriptor) key() descriptorKey {
	return descriptorKey{owner: d.owner, id: d.id}
}
