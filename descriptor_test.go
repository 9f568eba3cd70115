// FILE: benchconf/descriptor_test.go
package benchconf

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDescriptorCreation tests registration validation edge cases
func TestDescriptorCreation(t *testing.T) {
	tests := []struct {
		name      string
		owner     string
		id        string
		valueType reflect.Type
		wantErr   error
	}{
		{"Valid", "DescCreate", "alpha", reflect.TypeOf(0), nil},
		{"ValidDashUnderscore", "DescCreate", "max_retries-v2", reflect.TypeOf(0), nil},
		{"EmptyID", "DescCreate", "", reflect.TypeOf(0), ErrInvalidDescriptor},
		{"EmptyOwner", "", "beta", reflect.TypeOf(0), ErrInvalidDescriptor},
		{"DottedOwner", "Desc.Create", "beta", reflect.TypeOf(0), ErrInvalidDescriptor},
		{"DottedID", "DescCreate", "be.ta", reflect.TypeOf(0), ErrInvalidDescriptor},
		{"LeadingDigitID", "DescCreate", "1beta", reflect.TypeOf(0), ErrInvalidDescriptor},
		{"NilValueType", "DescCreate", "gamma", nil, ErrInvalidDescriptor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(tt.owner, tt.id, tt.valueType, nil)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, d)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.owner, d.Owner())
				assert.Equal(t, tt.id, d.ID())
				assert.Equal(t, tt.valueType, d.ValueType())
			}
		})
	}
}

// TestDescriptorFullID verifies the stable display identity
func TestDescriptorFullID(t *testing.T) {
	assert.Equal(t, "Run.iterations", tIterations.FullID())
	assert.Equal(t, "Run.iterations", tIterations.String())
	assert.Equal(t, "Job.run", tJobRun.FullID())
}

// TestDescriptorEquality tests identity semantics
func TestDescriptorEquality(t *testing.T) {
	t.Run("SameDescriptor", func(t *testing.T) {
		assert.True(t, tIterations.Equal(tIterations))
	})

	t.Run("DifferentID", func(t *testing.T) {
		assert.False(t, tIterations.Equal(tWarmups))
	})

	t.Run("DifferentOwner", func(t *testing.T) {
		assert.False(t, tJobName.Equal(tLabel))
	})

	t.Run("NilHandling", func(t *testing.T) {
		var nilDesc *Descriptor
		assert.False(t, tIterations.Equal(nil))
		assert.True(t, nilDesc.Equal(nil))
	})
}

// TestDuplicateRegistration verifies the registry is append-only
func TestDuplicateRegistration(t *testing.T) {
	// (Run, iterations) is already registered by the fixtures, even with a
	// different value type the pair conflicts.
	d, err := New("Run", "iterations", reflect.TypeOf(int64(0)), int64(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateDescriptor)
	assert.Nil(t, d)
}

// TestLookup tests registry retrieval
func TestLookup(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		d, ok := Lookup("Run", "iterations")
		require.True(t, ok)
		assert.True(t, d.Equal(tIterations))
	})

	t.Run("NotFound", func(t *testing.T) {
		_, ok := Lookup("Run", "nonexistent")
		assert.False(t, ok)
	})

	t.Run("RegisteredSortedByID", func(t *testing.T) {
		ds := Registered("Run")
		require.NotEmpty(t, ds)
		for i := 1; i < len(ds); i++ {
			assert.Less(t, ds[i-1].ID(), ds[i].ID())
		}
	})

	t.Run("RegisteredUnknownOwner", func(t *testing.T) {
		assert.Empty(t, Registered("NoSuchOwner"))
	})
}

// TestGroupDescriptor tests nested-settings declarations
func TestGroupDescriptor(t *testing.T) {
	t.Run("Properties", func(t *testing.T) {
		assert.True(t, tJobRun.Nested())
		assert.Equal(t, "Run", tJobRun.ChildOwner())
		assert.Equal(t, containerType, tJobRun.ValueType())
	})

	t.Run("PlainDescriptorNotNested", func(t *testing.T) {
		assert.False(t, tIterations.Nested())
		assert.Empty(t, tIterations.ChildOwner())
	})

	t.Run("InvalidChildOwner", func(t *testing.T) {
		_, err := NewGroup("DescGroup", "bad", "child.owner")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidDescriptor)
	})
}

// TestMustNewPanics verifies the package-level declaration helper
func TestMustNewPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustNew("DescMust", "", reflect.TypeOf(0), nil)
	})
	assert.Panics(t, func() {
		MustNewGroup("DescMust", "group", "")
	})
}

// TestNoCopyFlag verifies the copy-policy marker
func TestNoCopyFlag(t *testing.T) {
	assert.True(t, tJobToolchain.NoCopy())
	assert.False(t, tIterations.NoCopy())
}
