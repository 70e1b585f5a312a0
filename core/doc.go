// Package core defines the shared types used across the hlog framework.
//
// It provides the Level type and its total order (with the BelowAll and
// AboveAll threshold sentinels), the LevelSet bitmask used for block
// filters, the Record type that represents a single log call, and the
// Clock collaborator that stamps records with time.
//
// Records are plain values and are never pooled: a mocked logger keeps
// its recorded calls alive until the verification protocol consumes
// them, so recycling would corrupt the mock queue.
//
// Two clocks ship with the package. WallClock reads a coarse cached
// wall-clock value refreshed every 500µs, keeping the stamp on the log
// hot path to a single atomic load. SimClock is advanced manually and
// exists for simulation-style runs and for tests that assert on record
// times.
package core
