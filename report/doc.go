// Package report renders simulation results as text: a Gantt chart of the
// timeline, a per-process summary and a unified diff between two runs.
package report
