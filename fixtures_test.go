// FILE: benchconf/fixtures_test.go
package benchconf

import (
	"reflect"
	"time"
)

// testToolchain stands in for a value with external identity that must not be
// copied when containers are duplicated.
type testToolchain struct {
	name string
}

// Shared descriptor fixtures. The registry is process-wide and append-only,
// so tests declare descriptors once here and only exercise failing
// registrations inline.
var (
	tIterations = MustNew("Run", "iterations", reflect.TypeOf(0), 16)
	tWarmups    = MustNew("Run", "warmups", reflect.TypeOf(0), 0,
		WithResolver(func(c *Container, fallback any) any {
			n, err := c.Int64(tIterations)
			if err != nil {
				return fallback
			}
			return int(n / 4)
		}))
	tLabel  = MustNew("Run", "label", reflect.TypeOf(""), "")
	tUnroll = MustNew("Run", "unroll", reflect.TypeOf(false), false)
	tTags   = MustNew("Run", "tags", reflect.TypeOf([]string(nil)), []string(nil))

	tJobName      = MustNew("Job", "name", reflect.TypeOf(""), "default")
	tJobRun       = MustNewGroup("Job", "run", "Run")
	tJobToolchain = MustNew("Job", "toolchain", reflect.TypeOf(&testToolchain{}), nil,
		WithNoCopy())

	tMaxErr  = MustNew("Accuracy", "max_error", reflect.TypeOf(0.0), 0.02)
	tTimeout = MustNew("Accuracy", "timeout", reflect.TypeOf(time.Duration(0)), 5*time.Minute)

	// Echoes its fallback so tests can observe what resolvers receive as the
	// current-value argument.
	tProbe = MustNew("Probe", "echo", reflect.TypeOf(""), "fallback-echo",
		WithResolver(func(c *Container, fallback any) any {
			return fallback
		}))

	tCount = MustNew("Scenario", "count", reflect.TypeOf(0), 1)
)
