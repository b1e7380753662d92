package ingest

import (
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"
)

// snappyExt marks interaction logs compressed with snappy framing.
const snappyExt = ".snappy"

type snappyFile struct {
	io.Reader
	f *os.File
}

func (s *snappyFile) Close() error {
	return s.f.Close()
}

// Open opens an interaction log for reading. Files with a .snappy extension
// are decompressed transparently; everything else is read as plain text.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, snappyExt) {
		return &snappyFile{Reader: snappy.NewReader(f), f: f}, nil
	}
	return f, nil
}
