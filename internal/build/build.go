// Package build holds build-time metadata for the tabby binary.
package build

// Version is the application version. It defaults to "dev" and is
// overwritten by linker flags on release builds.
var Version = "dev"
