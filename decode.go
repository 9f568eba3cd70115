// FILE: benchconf/decode.go
package benchconf

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes the fully resolved view of one owner's settings on this
// container into the target struct or map: explicit values, resolver results,
// and fallbacks all participate, exactly as Resolve would report them. Group
// descriptors decode into nested struct fields. The target must be a non-nil
// pointer; fields map through the "toml" tag, consistent with LoadFile.
//
// Scan is the bridge to consumers that want a plain typed snapshot rather
// than descriptor-by-descriptor reads.
func (c *Container) Scan(owner string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("target of Scan must be a non-nil pointer, got %T", target)
	}

	seen := map[string]bool{owner: true}
	tree := c.resolvedTree(owner, seen)

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "toml",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(tree); err != nil {
		return fmt.Errorf("failed to scan %s settings into %T: %w", owner, target, err)
	}

	return nil
}

// resolvedTree builds the id -> resolved value map for every descriptor
// declared on owner, recursing through group descriptors. Settings that
// resolve to nil are left out rather than decoded as typed zero values.
func (c *Container) resolvedTree(owner string, seen map[string]bool) map[string]any {
	tree := make(map[string]any)
	for _, d := range Registered(owner) {
		if d.Nested() {
			if seen[d.ChildOwner()] {
				continue
			}
			child, ok := c.Resolve(d).(*Container)
			if !ok || child == nil {
				continue
			}
			seen[d.ChildOwner()] = true
			tree[d.ID()] = child.resolvedTree(d.ChildOwner(), seen)
			delete(seen, d.ChildOwner())
			continue
		}
		if v := c.Resolve(d); v != nil {
			tree[d.ID()] = v
		}
	}
	return tree
}
