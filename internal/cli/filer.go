package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/toyz/buildergen/internal/errors"
	"github.com/toyz/buildergen/internal/utils/fileops"
	"github.com/toyz/buildergen/pkg/builder"
)

// DiskFiler writes generated units next to the source of their target type.
// A file whose content is unchanged is left alone, a file that was not
// generated by this tool is never overwritten.
type DiskFiler struct {
	paths     *fileops.PathValidator
	created   map[string]bool
	Written   []string
	Unchanged []string
}

// NewDiskFiler creates a filer writing to the file system
func NewDiskFiler() *DiskFiler {
	return &DiskFiler{
		paths:   fileops.NewPathValidator(),
		created: make(map[string]bool),
	}
}

// Create implements builder.Filer
func (f *DiskFiler) Create(unit *builder.Unit) (io.WriteCloser, error) {
	if unit.Dir == "" {
		return nil, fmt.Errorf("no output directory for %s", unit.Name)
	}

	path, err := f.paths.GetAbsolutePath(unit.Path())
	if err != nil {
		return nil, errors.WrapFileSystemError("resolve", unit.Path(), err)
	}
	if f.created[path] {
		return nil, fmt.Errorf("file %s was already generated in this run", path)
	}

	if f.paths.Exists(path) {
		if !f.paths.IsFile(path) {
			return nil, errors.Newf(errors.FileSystemErrorCode, "%s exists and is not a regular file", path)
		}
		generated, err := IsGeneratedBuilder(path)
		if err != nil {
			return nil, err
		}
		if !generated {
			return nil, errors.Newf(errors.FileSystemErrorCode,
				"refusing to overwrite %s: it was not generated by buildergen", path).
				WithSuggestion("rename the file or pick another file suffix")
		}
	}

	f.created[path] = true
	return &diskFile{filer: f, path: path}, nil
}

type diskFile struct {
	filer *DiskFiler
	path  string
	buf   bytes.Buffer
}

func (d *diskFile) Write(p []byte) (int, error) {
	return d.buf.Write(p)
}

func (d *diskFile) Close() error {
	if existing, err := os.ReadFile(d.path); err == nil && bytes.Equal(existing, d.buf.Bytes()) {
		d.filer.Unchanged = append(d.filer.Unchanged, d.path)
		return nil
	}

	if err := os.WriteFile(d.path, d.buf.Bytes(), 0644); err != nil {
		return errors.WrapFileSystemError("write", d.path, err)
	}
	d.filer.Written = append(d.filer.Written, d.path)
	return nil
}

// StdoutFiler prints generated units instead of writing them
type StdoutFiler struct {
	out io.Writer
}

// NewStdoutFiler creates a filer printing to out
func NewStdoutFiler(out io.Writer) *StdoutFiler {
	return &StdoutFiler{out: out}
}

// Create implements builder.Filer
func (f *StdoutFiler) Create(unit *builder.Unit) (io.WriteCloser, error) {
	if _, err := fmt.Fprintf(f.out, "// ==> %s\n", unit.Path()); err != nil {
		return nil, err
	}
	return nopCloser{f.out}, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
