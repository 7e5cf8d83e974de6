package winscm

// Version is the current version of the go-winscm library.
const Version = "1.0.0"

// VersionInfo contains detailed version information.
type VersionInfo struct {
	// Version is the semantic version.
	Version string
	// API is the system interface the library binds to.
	API string
}

// GetVersion returns the current version information.
func GetVersion() VersionInfo {
	return VersionInfo{
		Version: Version,
		API:     "advapi32",
	}
}
