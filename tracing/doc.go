// Package tracing wraps OpenTelemetry so that simulation ticks and runs can
// be recorded as spans without the rest of the code importing the SDK.
package tracing
