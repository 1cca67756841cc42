// Package application wires a resolved configuration snapshot into the
// read-only status API and its HTTP server, keeping the main package focused
// on CLI parsing and orchestration.
package application
