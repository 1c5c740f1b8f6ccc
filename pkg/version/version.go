package version

// version is set at build time with -ldflags "-X github.com/cbodonnell/pong/pkg/version.version=..."
var version = "dev"

// Get returns the build version of the binary.
func Get() string {
	return version
}
