// Package progress keeps per-run process counters that observers can poll or
// subscribe to while a simulation advances.
package progress
