// FILE: benchconf/io.go
package benchconf

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvTransformFunc converts a descriptor path like "Run.iterations" to an
// environment variable name. The default transform uppercases and replaces
// dots with underscores, so with prefix "BENCH_" the path becomes
// "BENCH_RUN_ITERATIONS".
type EnvTransformFunc func(path string) string

func defaultEnvTransform(prefix string) EnvTransformFunc {
	return func(path string) string {
		env := strings.ReplaceAll(path, ".", "_")
		env = strings.ToUpper(env)
		return prefix + env
	}
}

// LoadFile reads a settings file and applies every key that names a registered
// descriptor as an explicit value on the container. The format is chosen by
// extension: .toml, .json, .yaml or .yml. Files hold one table per owner:
//
//	[Run]
//	iterations = 16
//
//	[Job.run]        # nested settings of a group descriptor
//	count = 5
//
// Keys that name no registered descriptor are ignored, so one file can feed
// several independently-declared owners. Fails with ErrFileNotFound if the
// file does not exist and with ErrFrozen before touching the file if the
// container is frozen. Values that cannot be coerced to the descriptor's type
// are collected and reported joined.
func (c *Container) LoadFile(path string) error {
	if c.frozen {
		return fmt.Errorf("%w: cannot load %s", ErrFrozen, path)
	}

	fileData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("failed to read settings file '%s': %w", path, err)
	}

	fileConfig := make(map[string]any)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(fileData, &fileConfig); err != nil {
			return fmt.Errorf("failed to parse TOML settings file '%s': %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &fileConfig); err != nil {
			return fmt.Errorf("failed to parse JSON settings file '%s': %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &fileConfig); err != nil {
			return fmt.Errorf("failed to parse YAML settings file '%s': %w", path, err)
		}
	default:
		return fmt.Errorf("unable to determine settings format for file '%s'", path)
	}

	var loadErrors []error
	for p, value := range flattenMap(fileConfig, "") {
		if err := c.applyPath(strings.Split(p, "."), value); err != nil {
			loadErrors = append(loadErrors, fmt.Errorf("%s: %w", p, err))
		}
	}
	return errors.Join(loadErrors...)
}

// applyPath binds one flattened file path onto the container. The first two
// segments name a registered descriptor; further segments descend through
// group descriptors into child containers.
func (c *Container) applyPath(segments []string, value any) error {
	if len(segments) < 2 {
		return nil // Bare top-level keys cannot name a descriptor
	}
	d, ok := Lookup(segments[0], segments[1])
	if !ok {
		return nil // Unregistered keys are ignored
	}
	if d.Nested() {
		if len(segments) < 3 {
			return fmt.Errorf("%w: %s takes a table of child settings", ErrInvalidValue, d.FullID())
		}
		child, err := c.Child(d)
		if err != nil {
			return err
		}
		rest := append([]string{d.ChildOwner()}, segments[2:]...)
		return child.applyPath(rest, value)
	}
	if len(segments) > 2 {
		return nil // Deeper path under a plain descriptor, not ours
	}
	return c.Set(d, coerceValue(value, d.ValueType()))
}

// LoadEnv applies environment variable overrides as explicit values for every
// descriptor registered on the given owners, including the child settings of
// their group descriptors. Variable names derive from descriptor paths via the
// default transform with the given prefix. String values are parsed
// bool-then-int-then-float, falling back to the raw string.
func (c *Container) LoadEnv(prefix string, owners ...string) error {
	return c.LoadEnvWithTransform(defaultEnvTransform(prefix), owners...)
}

// LoadEnvWithTransform is LoadEnv with a caller-supplied name transform.
func (c *Container) LoadEnvWithTransform(transform EnvTransformFunc, owners ...string) error {
	if c.frozen {
		return fmt.Errorf("%w: cannot load environment overrides", ErrFrozen)
	}

	var loadErrors []error
	for _, owner := range owners {
		seen := map[string]bool{owner: true}
		if err := c.loadEnvOwner(owner, owner, seen, transform); err != nil {
			loadErrors = append(loadErrors, err)
		}
	}
	return errors.Join(loadErrors...)
}

func (c *Container) loadEnvOwner(owner, pathPrefix string, seen map[string]bool, transform EnvTransformFunc) error {
	var loadErrors []error
	for _, d := range Registered(owner) {
		path := pathPrefix + "." + d.ID()
		if d.Nested() {
			// Guard against group graphs that loop back into a visited owner.
			if seen[d.ChildOwner()] {
				continue
			}
			if !hasEnvBelow(d.ChildOwner(), path, seen, transform) {
				continue // Avoid materializing a child nothing overrides
			}
			child, err := c.Child(d)
			if err != nil {
				loadErrors = append(loadErrors, err)
				continue
			}
			seen[d.ChildOwner()] = true
			if err := child.loadEnvOwner(d.ChildOwner(), path, seen, transform); err != nil {
				loadErrors = append(loadErrors, err)
			}
			delete(seen, d.ChildOwner())
			continue
		}
		if raw, exists := os.LookupEnv(transform(path)); exists {
			value := coerceValue(parseValue(raw), d.ValueType())
			if err := c.Set(d, value); err != nil {
				loadErrors = append(loadErrors, err)
			}
		}
	}
	return errors.Join(loadErrors...)
}

// hasEnvBelow reports whether any environment variable overrides a descriptor
// at or below the given owner subtree.
func hasEnvBelow(owner, pathPrefix string, seen map[string]bool, transform EnvTransformFunc) bool {
	for _, d := range Registered(owner) {
		path := pathPrefix + "." + d.ID()
		if d.Nested() {
			if seen[d.ChildOwner()] {
				continue
			}
			seen[d.ChildOwner()] = true
			found := hasEnvBelow(d.ChildOwner(), path, seen, transform)
			delete(seen, d.ChildOwner())
			if found {
				return true
			}
			continue
		}
		if _, exists := os.LookupEnv(transform(path)); exists {
			return true
		}
	}
	return false
}

// Save writes the container's explicit values to a TOML file with an atomic
// temp-file rename. Only explicit values are written: resolved defaults stay
// out of the file so that loading it elsewhere preserves the set-vs-defaulted
// distinction. The container may be frozen; Save only reads.
func (c *Container) Save(path string) error {
	tomlData, err := toml.Marshal(c.explicitTree(true))
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create settings directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary settings file: %w", err)
	}
	defer os.Remove(tempFile.Name()) // Clean up temp file if rename fails

	if _, err := tempFile.Write(tomlData); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temp settings file '%s': %w", tempFile.Name(), err)
	}
	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temp settings file '%s': %w", tempFile.Name(), err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp settings file '%s': %w", tempFile.Name(), err)
	}

	if err := os.Rename(tempFile.Name(), path); err != nil {
		return fmt.Errorf("failed to rename temp file to '%s': %w", path, err)
	}

	if err := os.Chmod(path, 0644); err != nil {
		return fmt.Errorf("failed to set permissions on settings file '%s': %w", path, err)
	}

	return nil
}

// explicitTree builds the nested map shape LoadFile reads back. At the top
// level keys are "Owner.id" paths; inside a child container keys are bare ids,
// since the group descriptor's path already locates the subtree.
func (c *Container) explicitTree(top bool) map[string]any {
	out := make(map[string]any)
	for _, e := range c.values {
		if e.value == nil {
			continue // TOML has no null; explicit nils stay in-memory only
		}
		if top {
			setNestedValue(out, e.desc.FullID(), saveValue(e.value))
		} else {
			out[e.desc.ID()] = saveValue(e.value)
		}
	}
	for _, e := range c.children {
		if top {
			setNestedValue(out, e.desc.FullID(), e.child.explicitTree(false))
		} else {
			out[e.desc.ID()] = e.child.explicitTree(false)
		}
	}
	return out
}

// saveValue normalizes values the TOML encoder has no native form for.
func saveValue(v any) any {
	if d, ok := v.(time.Duration); ok {
		return d.String()
	}
	return v
}
