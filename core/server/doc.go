// Package server holds the HTTP server configuration: the listen port and
// the optional API key every request must present.
package server
