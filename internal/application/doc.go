// Package application provides application initialization and dependency wiring.
// It encapsulates the creation of snapshot storage, handlers, routers, and
// HTTP server instances, and owns the policy that turns a missing required
// configuration value into process termination.
package application
