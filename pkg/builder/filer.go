package builder

import (
	"bytes"
	"fmt"
	"io"
)

// Filer is the host tool's persistence layer for generated units
type Filer interface {
	// Create opens the destination of unit. The unit is written in full and
	// the writer closed; an error from either is an emission failure.
	Create(unit *Unit) (io.WriteCloser, error)
}

// FilerFunc adapts a function to Filer
type FilerFunc func(unit *Unit) (io.WriteCloser, error)

// Create implements Filer
func (f FilerFunc) Create(unit *Unit) (io.WriteCloser, error) { return f(unit) }

// MemFiler keeps written units in memory, keyed by unit name
type MemFiler struct {
	Files map[string][]byte
	order []string
}

// NewMemFiler creates an empty in-memory filer
func NewMemFiler() *MemFiler {
	return &MemFiler{Files: make(map[string][]byte)}
}

// Create implements Filer
func (m *MemFiler) Create(unit *Unit) (io.WriteCloser, error) {
	if _, exists := m.Files[unit.Name]; exists {
		return nil, fmt.Errorf("source unit %s already created", unit.Name)
	}
	return &memFile{filer: m, name: unit.Name}, nil
}

// Names returns the names of the written units in write order
func (m *MemFiler) Names() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

type memFile struct {
	filer *MemFiler
	name  string
	buf   bytes.Buffer
}

func (f *memFile) Write(p []byte) (int, error) {
	return f.buf.Write(p)
}

func (f *memFile) Close() error {
	f.filer.Files[f.name] = f.buf.Bytes()
	f.filer.order = append(f.filer.order, f.name)
	return nil
}

// writeUnit hands unit to filer and writes it out
func writeUnit(filer Filer, unit *Unit) (err error) {
	w, err := filer.Create(unit)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := w.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	_, err = w.Write(unit.Source)
	return err
}
