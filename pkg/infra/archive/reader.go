package archive

import (
	"archive/zip"
	"io"

	"github.com/k-fujiwara/pbrimport/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

// Store opens zip archives from the local filesystem.
type Store struct{}

// NewStore creates a new zip archive store
func NewStore() *Store {
	return &Store{}
}

// OpenArchive opens the zip file at path for member access.
func (s *Store) OpenArchive(path string) (interfaces.Archive, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open archive", goerr.V("path", path))
	}

	return &zipArchive{rc: rc}, nil
}

type zipArchive struct {
	rc *zip.ReadCloser
}

// List returns the non-directory member names in archive order.
func (a *zipArchive) List() []string {
	var names []string
	for _, f := range a.rc.File {
		if f.FileInfo().IsDir() {
			continue
		}
		names = append(names, f.Name)
	}
	return names
}

// Open opens a single member for reading.
func (a *zipArchive) Open(name string) (io.ReadCloser, error) {
	for _, f := range a.rc.File {
		if f.Name == name {
			r, err := f.Open()
			if err != nil {
				return nil, goerr.Wrap(err, "failed to open archive member", goerr.V("member", name))
			}
			return r, nil
		}
	}
	return nil, goerr.New("archive member not found", goerr.V("member", name))
}

func (a *zipArchive) Close() error {
	return a.rc.Close()
}
