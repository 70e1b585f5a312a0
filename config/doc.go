// Package config wires a registry from a YAML document: named handler
// definitions (output, format, threshold, block filter) and per-logger
// subtree settings (attached handlers, per-handler thresholds, stop
// level). It exists so test harnesses can reconfigure logging without
// recompiling.
package config
