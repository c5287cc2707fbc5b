// Package idgen generates opaque identifiers for simulation runs and queued
// messages. Tests replace NewFunc to get stable ids.
package idgen
