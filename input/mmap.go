package input

import (
	"fmt"
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// Mapped is a read-only memory mapping of an input file. The bytes are
// shared by all readers without locking and are valid until Close.
type Mapped struct {
	file *os.File
	data mmap.MMap
}

func Open(path string) (*Mapped, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open input: %w", err)
	}

	fs, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("unable to stat input %s: %w", path, err)
	}
	if !fs.Mode().IsRegular() {
		f.Close()
		return nil, fmt.Errorf("unable to map input %s: not a regular file", path)
	}

	// Zero-length mappings are rejected by the kernel.
	if fs.Size() == 0 {
		return &Mapped{file: f}, nil
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("unable to map input %s: %w", path, err)
	}
	adviseSequential(data)

	return &Mapped{file: f, data: data}, nil
}

func (m *Mapped) Bytes() []byte {
	return m.data
}

func (m *Mapped) Len() int {
	return len(m.data)
}

func (m *Mapped) Close() error {
	if m.data != nil {
		if err := m.data.Unmap(); err != nil {
			m.file.Close()
			return fmt.Errorf("unable to unmap input: %w", err)
		}
		m.data = nil
	}
	if err := m.file.Close(); err != nil {
		return fmt.Errorf("unable to close input: %w", err)
	}
	return nil
}
