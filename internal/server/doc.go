// Package server runs the HTTP transport: startup, signal handling and
// graceful shutdown bounded by the configured timeout.
package server
