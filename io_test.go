// FILE: benchconf/io_test.go
package benchconf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoadFileTOML tests the TOML source
func TestLoadFileTOML(t *testing.T) {
	path := writeFile(t, "bench.toml", `
[Run]
iterations = 64
label = "from-file"
unknown_key = true

[Accuracy]
max_error = 0.1
timeout = "30s"

[Unregistered]
whatever = 1
`)

	c := NewContainer()
	require.NoError(t, c.LoadFile(path))

	// Loaded keys are explicit values
	assert.True(t, c.HasValue(tIterations))
	assert.Equal(t, 64, c.Resolve(tIterations))
	assert.Equal(t, "from-file", c.Resolve(tLabel))

	// Numeric and duration coercion toward the declared value type
	assert.Equal(t, 0.1, c.Resolve(tMaxErr))
	assert.Equal(t, 30*time.Second, c.Resolve(tTimeout))

	// Unknown keys and owners are ignored
	assert.False(t, c.HasValue(tUnroll))
}

// TestLoadFileYAML tests the YAML source
func TestLoadFileYAML(t *testing.T) {
	path := writeFile(t, "bench.yaml", `
Run:
  iterations: 8
  unroll: true
`)

	c := NewContainer()
	require.NoError(t, c.LoadFile(path))
	assert.Equal(t, 8, c.Resolve(tIterations))
	assert.Equal(t, true, c.Resolve(tUnroll))
}

// TestLoadFileJSON tests the JSON source
func TestLoadFileJSON(t *testing.T) {
	path := writeFile(t, "bench.json", `{"Run": {"iterations": 12}}`)

	c := NewContainer()
	require.NoError(t, c.LoadFile(path))
	assert.Equal(t, 12, c.Resolve(tIterations))
}

// TestLoadFileNested tests group descriptor subtables
func TestLoadFileNested(t *testing.T) {
	path := writeFile(t, "job.toml", `
[Job]
name = "throughput"

[Job.run]
iterations = 24
label = "nested"
`)

	c := NewContainer()
	require.NoError(t, c.LoadFile(path))

	assert.Equal(t, "throughput", c.Resolve(tJobName))
	child, err := c.Child(tJobRun)
	require.NoError(t, err)
	assert.Equal(t, 24, child.Resolve(tIterations))
	assert.Equal(t, "nested", child.Resolve(tLabel))
}

// TestLoadFileErrors tests failure modes
func TestLoadFileErrors(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		c := NewContainer()
		err := c.LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("FrozenTarget", func(t *testing.T) {
		path := writeFile(t, "bench.toml", `[Run]
iterations = 1`)
		c := NewContainer().Freeze()
		err := c.LoadFile(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFrozen)
	})

	t.Run("UnknownExtension", func(t *testing.T) {
		path := writeFile(t, "bench.ini", `iterations = 1`)
		c := NewContainer()
		assert.Error(t, c.LoadFile(path))
	})

	t.Run("MalformedTOML", func(t *testing.T) {
		path := writeFile(t, "bench.toml", `[Run`)
		c := NewContainer()
		assert.Error(t, c.LoadFile(path))
	})

	t.Run("UncoercibleValue", func(t *testing.T) {
		path := writeFile(t, "bench.toml", `[Run]
iterations = "plenty"`)
		c := NewContainer()
		err := c.LoadFile(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidValue)
	})
}

// TestLoadEnv tests environment variable overrides
func TestLoadEnv(t *testing.T) {
	t.Run("TopLevel", func(t *testing.T) {
		t.Setenv("BENCH_RUN_ITERATIONS", "128")
		t.Setenv("BENCH_RUN_LABEL", "from-env")

		c := NewContainer()
		require.NoError(t, c.LoadEnv("BENCH_", "Run"))

		assert.Equal(t, 128, c.Resolve(tIterations))
		assert.Equal(t, "from-env", c.Resolve(tLabel))
		assert.False(t, c.HasValue(tUnroll))
	})

	t.Run("NestedGroup", func(t *testing.T) {
		t.Setenv("BENCH_JOB_RUN_ITERATIONS", "256")

		c := NewContainer()
		require.NoError(t, c.LoadEnv("BENCH_", "Job"))

		child, err := c.Child(tJobRun)
		require.NoError(t, err)
		assert.Equal(t, 256, child.Resolve(tIterations))
	})

	t.Run("NoMatchesLeavesContainerEmpty", func(t *testing.T) {
		c := NewContainer()
		require.NoError(t, c.LoadEnv("DEFINITELY_UNSET_PREFIX_", "Job"))
		assert.Empty(t, c.ExplicitDescriptors())
	})

	t.Run("CustomTransform", func(t *testing.T) {
		t.Setenv("X-Run.iterations", "7")

		c := NewContainer()
		err := c.LoadEnvWithTransform(func(path string) string {
			return "X-" + path
		}, "Run")
		require.NoError(t, err)
		assert.Equal(t, 7, c.Resolve(tIterations))
	})

	t.Run("FrozenTarget", func(t *testing.T) {
		c := NewContainer().Freeze()
		err := c.LoadEnv("BENCH_", "Run")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFrozen)
	})
}

// TestSaveRoundTrip verifies explicit values persist and unset ones do not
func TestSaveRoundTrip(t *testing.T) {
	c := NewContainer()
	require.NoError(t, c.Set(tIterations, 48))
	require.NoError(t, c.Set(tTimeout, 90*time.Second))
	child, err := c.Child(tJobRun)
	require.NoError(t, err)
	require.NoError(t, child.Set(tLabel, "saved"))

	path := filepath.Join(t.TempDir(), "out", "bench.toml")
	require.NoError(t, c.Save(path))

	loaded := NewContainer()
	require.NoError(t, loaded.LoadFile(path))

	assert.Equal(t, 48, loaded.Resolve(tIterations))
	assert.Equal(t, 90*time.Second, loaded.Resolve(tTimeout))

	loadedChild, err := loaded.Child(tJobRun)
	require.NoError(t, err)
	assert.Equal(t, "saved", loadedChild.Resolve(tLabel))

	// Defaults were not baked into the file
	assert.False(t, loaded.HasValue(tWarmups))
	assert.False(t, loaded.HasValue(tLabel))
}

// TestSaveFrozenContainer verifies Save is a pure read
func TestSaveFrozenContainer(t *testing.T) {
	c := NewContainer()
	require.NoError(t, c.Set(tIterations, 5))
	c.Freeze()

	path := filepath.Join(t.TempDir(), "frozen.toml")
	require.NoError(t, c.Save(path))

	loaded := NewContainer()
	require.NoError(t, loaded.LoadFile(path))
	assert.Equal(t, 5, loaded.Resolve(tIterations))
}
