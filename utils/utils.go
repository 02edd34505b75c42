package utils

import (
	"io"
	"io/fs"
	"os"

	"github.com/h2non/filetype"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// sniffLen is the number of header bytes needed to recognise every image type filetype knows about.
const sniffLen = 262

// DetectContentType detects the MIME type of the named file by reading its header.
// Unknown content is reported as "application/octet-stream".
func DetectContentType(fsys fs.FS, name string) (string, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return "", err
	}
	defer file.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", errors.Wrapf(err, "could not read header of %s", name)
	}

	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown {
		return "application/octet-stream", nil
	}
	return kind.MIME.Value, nil
}

// IsImage reports whether the named file holds one of the supported image types.
func IsImage(fsys fs.FS, name string) bool {
	ctype, err := DetectContentType(fsys, name)
	if err != nil {
		return false
	}
	return len(ctype) > 6 && ctype[:6] == "image/"
}

// Contains returns true if a value is available in the collection.
func Contains[T comparable](slice []T, value T) bool {
	for _, v := range slice {
		if v == value {
			return true
		}
	}
	return false
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// OpenOutput opens the destination file for writing, or stdout when out
// equals pipeName. Binary output is refused when stdout is a terminal.
func OpenOutput(out, pipeName string) (io.WriteCloser, error) {
	if out == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, errors.Errorf("`%s` should be used with a pipe for stdout", pipeName)
		}
		return nopWriteCloser{os.Stdout}, nil
	}
	dst, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create the destination file")
	}
	return dst, nil
}
