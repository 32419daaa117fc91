// Package loader provides the plugin-like feature loading system.
//
// Features (library, importer, sync) implement the Feature interface and are
// registered with the Manager by the application root. Disabled features
// (for example sync without a remote URL) are skipped at load time, so the
// rest of the application never has to check for them.
package loader
