package interfaces

import "io"

// Archive provides read access to the members of one material archive.
type Archive interface {
	// List returns the non-directory member names in archive order.
	List() []string

	// Open opens a member for reading. The caller must close the reader.
	Open(name string) (io.ReadCloser, error)

	// Close releases the underlying archive.
	Close() error
}

// ArchiveStore opens material archives by filesystem path.
type ArchiveStore interface {
	OpenArchive(path string) (Archive, error)
}
