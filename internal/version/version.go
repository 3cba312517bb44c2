// internal/version/version.go
package version

// Version is the strscan release version. Overridable at build time via
// -ldflags "-X strscan/internal/version.Version=...".
var Version = "0.1.0"
