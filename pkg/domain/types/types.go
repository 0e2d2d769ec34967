package types

import "github.com/m-mizutani/goerr/v2"

// Version is the application version, overridable at build time.
var Version = "0.1.0"

// ManifestVersion is the schema version of the emitted manifest file.
const ManifestVersion = 1

// Sentinel errors used to derive the process exit code.
var (
	// ErrNoArchives means no importable archives were found in the
	// downloads directory.
	ErrNoArchives = goerr.New("no material archives found")

	// ErrPartialImport means the batch finished but one or more slugs
	// failed to import.
	ErrPartialImport = goerr.New("import completed with failures")

	// ErrMissingRequiredMap means an archive lacks a base color or
	// normal map. Fatal to that slug only.
	ErrMissingRequiredMap = goerr.New("missing required texture maps")
)
