// Package logger provides the structured logging facility, based on Zap.
//
// Configuration covers the level (debug selects the development encoder) and
// the encoding (console for terminals, json for log pipelines). WithRayID
// attaches the per-request ray id from the Fiber context so the logs of one
// request can be correlated.
package logger
