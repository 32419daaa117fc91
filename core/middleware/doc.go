// Package middleware contains HTTP middleware for the Fiber application.
//
//   - rayid: assigns a unique request id (ray id) to every incoming request,
//     exposed in locals and the X-Ray-Id response header for tracing.
//   - auth: validates the configured API key on every request.
package middleware
