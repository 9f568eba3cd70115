// FILE: benchconf/doc.go

// Package benchconf is the configuration-resolution engine for a benchmarking
// harness: a typed, process-wide registry of named settings grouped into
// composable value containers with deterministic fallback, cross-container
// merging, and one-way freezing.
//
// Features:
//   - Process-wide descriptor registry, written once at startup
//   - Explicit values kept distinct from resolved defaults (provenance)
//   - Computed defaults via resolver functions reading sibling settings
//   - Nested child containers for settings that are themselves setting groups
//   - Merge with PreferLocal / PreferGlobal precedence over explicit values only
//   - One-way Freeze making a container safe for unsynchronized reads
//   - TOML/JSON/YAML file and environment variable sources
//   - Struct snapshots via Scan
//
// Quick Start:
//
//	var (
//	    Iterations = benchconf.MustNew("Run", "iterations", reflect.TypeOf(0), 16)
//	    Warmups    = benchconf.MustNew("Run", "warmups", reflect.TypeOf(0), 0,
//	        benchconf.WithResolver(func(c *benchconf.Container, fallback any) any {
//	            n, _ := c.Int64(Iterations)
//	            return int(n / 4)
//	        }))
//	)
//
//	defaults := benchconf.NewContainer()
//	defaults.Set(Iterations, 32)
//
//	job, err := benchconf.NewBuilder().
//	    WithBase(defaults).
//	    WithFile("bench.toml").
//	    WithEnv("BENCH_", "Run").
//	    Freeze().
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	n := job.Resolve(Iterations)
//
// Resolution order per descriptor: explicit value, then resolver, then
// fallback. HasValue reports whether a value was set explicitly, which is what
// Merge honors: merged containers carry explicit values only, so a default
// from one partial source never shadows a setting a later source left unset.
//
// Concurrency:
// Descriptor registration happens during startup and is read-only afterwards.
// A mutable container assumes a single logical writer and takes no locks;
// once frozen it is safe for concurrent readers because no further writes can
// occur. Resolver graphs must be acyclic; a cycle recurses without bound.
package benchconf
