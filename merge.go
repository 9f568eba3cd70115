// FILE: benchconf/merge.go
package benchconf

// MergeRule is the precedence policy Merge applies when several input
// containers hold an explicit value for the same descriptor.
type MergeRule int

const (
	// PreferLocal lets the last container in the sequence win, the usual
	// layering for "global defaults first, most specific overrides last".
	PreferLocal MergeRule = iota

	// PreferGlobal lets the first container in the sequence win.
	PreferGlobal
)

// Merge combines an ordered sequence of containers into one new, mutable,
// unfrozen container.
//
// Only explicit values participate: a descriptor no input sets stays unset in
// the result, so resolution on the merged container still applies resolvers
// and fallbacks. Baking resolved defaults in here would let one partial
// source's default shadow a setting a later source meant to leave open.
//
// Values are copied under the same policy as Clone (WithNoCopy values shared
// by reference). Nested children are merged recursively, descriptor by
// descriptor, under the same rule. Inputs are never mutated and may be frozen
// or mutable indifferently.
func Merge(rule MergeRule, containers ...*Container) *Container {
	out := NewContainer()

	for _, c := range containers {
		if c == nil {
			continue
		}
		for k, e := range c.values {
			if rule == PreferGlobal {
				if _, taken := out.values[k]; taken {
					continue
				}
			}
			out.values[k] = entry{desc: e.desc, value: copyValue(e.desc, e.value)}
		}
	}

	// Children merge recursively even under PreferGlobal: a later container
	// may set child settings the first one left unset.
	for k := range childKeys(containers) {
		var parts []*Container
		var desc *Descriptor
		for _, c := range containers {
			if c == nil {
				continue
			}
			if e, ok := c.children[k]; ok {
				parts = append(parts, e.child)
				desc = e.desc
			}
		}
		if desc != nil {
			out.children[k] = childEntry{desc: desc, child: Merge(rule, parts...)}
		}
	}

	return out
}

// childKeys collects the union of group descriptor keys across all inputs.
func childKeys(containers []*Container) map[descriptorKey]struct{} {
	keys := make(map[descriptorKey]struct{})
	for _, c := range containers {
		if c == nil {
			continue
		}
		for k := range c.children {
			keys[k] = struct{}{}
		}
	}
	return keys
}
