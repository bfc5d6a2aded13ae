// Package version holds build identification.
package version

// Version is overridden at build time with
// -ldflags "-X grocery-cost/internal/version.Version=..."
var Version = "0.1.0"

// Name is the program name shown by the CLI and the API
const Name = "grocery-cost"

// APIVersion is the HTTP API revision
const APIVersion = "v1"
