// Package metrics collects run-time measurements of pisanocalc: a
// Prometheus registry fed by the period batch and the prime generator,
// exported in node_exporter textfile format, and runtime memory snapshots
// for the verbose summary.
package metrics
