// internal/version/version.go
package version

// Version is the tool version reported by --version and in synopsis headers.
var Version = "1.0.0"
