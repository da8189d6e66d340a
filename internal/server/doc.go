// Package server runs the development HTTP server lifecycle.
//
// It provides startup, signal handling and graceful shutdown for the
// reference chat backend.
package server
