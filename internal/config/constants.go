// Package config carries the handful of process-wide constants the
// pipeline driver and CLI need, following the teacher's own
// internal/config package in kind (a small var/const file) even
// though this tool recognizes only one source extension.
package config

// Version is the current lyzh version, settable at build time via
// -ldflags "-X github.com/anqurvanillapy/lyzh/internal/config.Version=...".
var Version = "0.1.0"

// SourceFileExt is the one recognized source file extension. There is
// deliberately no runtime configuration layer beyond this constant:
// spec.md §6's CLI takes exactly one positional argument, and adding
// a flag for the extension would widen that contract.
const SourceFileExt = ".lyzh"
