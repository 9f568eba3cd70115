// FILE: benchconf/builder.go
package benchconf

import "fmt"

// ValidatorFunc validates a composed container before it is handed out. It
// receives the merged (still mutable) container and should return an error if
// the combination of values is unacceptable.
type ValidatorFunc func(c *Container) error

// Builder composes the layering a benchmark harness applies per execution
// unit: global defaults first, then suite- and job-level overrides, then a
// settings file, then environment variables, validated and optionally frozen.
type Builder struct {
	rule         MergeRule
	layers       []*Container
	file         string
	envPrefix    string
	envTransform EnvTransformFunc
	envOwners    []string
	loadEnv      bool
	validators   []ValidatorFunc
	freeze       bool
}

// NewBuilder creates a builder with the PreferLocal rule, so later layers
// override earlier ones.
func NewBuilder() *Builder {
	return &Builder{
		rule:       PreferLocal,
		validators: make([]ValidatorFunc, 0),
	}
}

// WithRule sets the merge precedence rule.
func (b *Builder) WithRule(rule MergeRule) *Builder {
	b.rule = rule
	return b
}

// WithBase adds the lowest-precedence layer (under PreferLocal). Layers are
// merged in the order they were added.
func (b *Builder) WithBase(c *Container) *Builder {
	b.layers = append([]*Container{c}, b.layers...)
	return b
}

// WithOverride appends layers on top of those already added.
func (b *Builder) WithOverride(containers ...*Container) *Builder {
	b.layers = append(b.layers, containers...)
	return b
}

// WithFile loads a settings file onto the merged result, overriding every
// layer. See Container.LoadFile for the format.
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithEnv applies environment overrides for the given owners after the file,
// making the environment the highest-precedence source.
func (b *Builder) WithEnv(prefix string, owners ...string) *Builder {
	b.loadEnv = true
	b.envPrefix = prefix
	b.envOwners = owners
	return b
}

// WithEnvTransform sets a custom environment variable name transform.
func (b *Builder) WithEnvTransform(fn EnvTransformFunc) *Builder {
	b.envTransform = fn
	return b
}

// WithValidator adds validation functions run against the composed container.
func (b *Builder) WithValidator(fns ...ValidatorFunc) *Builder {
	b.validators = append(b.validators, fns...)
	return b
}

// Freeze makes Build freeze the composed container before returning it, the
// usual final step before attaching it to an execution plan.
func (b *Builder) Freeze() *Builder {
	b.freeze = true
	return b
}

// Build merges the layers under the configured rule, applies file and
// environment sources, runs the validators, and returns the result. The
// inputs are never mutated; the result is a fresh container, frozen iff
// Freeze was requested.
func (b *Builder) Build() (*Container, error) {
	merged := Merge(b.rule, b.layers...)

	if b.file != "" {
		if err := merged.LoadFile(b.file); err != nil {
			return nil, fmt.Errorf("failed to load settings file: %w", err)
		}
	}

	if b.loadEnv {
		transform := b.envTransform
		if transform == nil {
			transform = defaultEnvTransform(b.envPrefix)
		}
		if err := merged.LoadEnvWithTransform(transform, b.envOwners...); err != nil {
			return nil, fmt.Errorf("failed to load environment overrides: %w", err)
		}
	}

	for _, validate := range b.validators {
		if err := validate(merged); err != nil {
			return nil, fmt.Errorf("settings validation failed: %w", err)
		}
	}

	if b.freeze {
		merged.Freeze()
	}

	return merged, nil
}
