package mmap

import (
	"bytes"
	"errors"
	"os"
)

// AccessPattern provides hints to the kernel about how the data will be accessed.
type AccessPattern int

const (
	// AccessDefault is the default access pattern (no specific advice).
	AccessDefault AccessPattern = iota
	// AccessSequential expects data to be accessed sequentially.
	AccessSequential
)

// ErrInvalidSize is returned when the file size cannot be mapped.
var ErrInvalidSize = errors.New("mmap: invalid file size")

// File represents a read-only memory-mapped file.
type File struct {
	data []byte
}

// Open maps the file at path into memory as read-only.
// Empty files are not mapped; their Bytes are nil.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	size := fi.Size()
	if size == 0 {
		return &File{}, nil
	}
	if size < 0 || int64(int(size)) != size {
		return nil, ErrInvalidSize
	}

	data, err := mmap(f, int(size))
	if err != nil {
		return nil, err
	}

	return &File{data: data}, nil
}

// Bytes returns the mapped contents.
func (m *File) Bytes() []byte { return m.data }

// Len returns the mapped size in bytes.
func (m *File) Len() int { return len(m.data) }

// Reader returns a reader over the mapped contents.
func (m *File) Reader() *bytes.Reader { return bytes.NewReader(m.data) }

// Advise hints the kernel about the upcoming access pattern.
func (m *File) Advise(p AccessPattern) error {
	if len(m.data) == 0 {
		return nil
	}
	return madvise(m.data, p)
}

// Close unmaps the file. It is safe to call Close more than once.
func (m *File) Close() error {
	if m == nil || m.data == nil {
		return nil
	}
	err := munmap(m.data)
	m.data = nil
	return err
}
