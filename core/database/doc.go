// Package database provides the local persistence layer.
//
// It opens a GORM connection (sqlite for single-machine deployments, mysql
// where a server is available) and exposes a small JSON key/value store on
// top of it. The application state is persisted as whole documents under the
// keys "books", "borrowedBooks", "users", "activeUser" and "settings" - the
// same shapes the sync endpoint exchanges - rather than as a relational
// schema, because the remote endpoint is the source of durability and the
// local copy only needs to survive restarts.
//
// The connection is optional: when it fails, the application keeps running
// in memory and logs a warning.
package database
