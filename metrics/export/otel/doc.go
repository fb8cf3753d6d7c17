// Package otel bridges authcore metrics into an OpenTelemetry meter via
// observable instruments. Counters are observed from snapshots on collection;
// nothing is pushed on the hot path.
package otel
