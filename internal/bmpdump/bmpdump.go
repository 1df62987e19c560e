// Package bmpdump writes numbered bitmap snapshots of rendered frames.
package bmpdump

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
)

// DefaultPrefix is the file name prefix used when none is given.
const DefaultPrefix = "dump"

// ErrNoImage is returned when asked to dump a nil image.
var ErrNoImage = errors.New("bmpdump: nil image")

// Encode writes img to w in BMP format.
func Encode(w io.Writer, img image.Image) error {
	if img == nil {
		return ErrNoImage
	}
	if err := bmp.Encode(w, img); err != nil {
		return fmt.Errorf("bmpdump: encode: %w", err)
	}
	return nil
}

// Dumper writes <dir>/<prefix>NN.bmp files with an increasing sequence
// number. A Dumper is not safe for concurrent use.
type Dumper struct {
	dir    string
	prefix string
	seq    int
}

// New creates a Dumper writing into dir. An empty prefix means DefaultPrefix.
func New(dir, prefix string) *Dumper {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Dumper{dir: dir, prefix: prefix}
}

// Dir returns the output directory.
func (d *Dumper) Dir() string {
	return d.dir
}

// Next returns the sequence number the next Dump will use.
func (d *Dumper) Next() int {
	return d.seq
}

// PathFor returns the file path for sequence number n.
func (d *Dumper) PathFor(n int) string {
	return filepath.Join(d.dir, fmt.Sprintf("%s%02d.bmp", d.prefix, n))
}

// Dump encodes img to the next numbered file and returns its path.
// The sequence number advances even when writing fails, so a failed frame
// never overwrites a later one.
func (d *Dumper) Dump(img image.Image) (string, error) {
	if img == nil {
		return "", ErrNoImage
	}

	path := d.PathFor(d.seq)
	d.seq++

	if err := os.MkdirAll(d.dir, 0o750); err != nil {
		return "", fmt.Errorf("bmpdump: create dir: %w", err)
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("bmpdump: create file: %w", err)
	}

	if err := Encode(f, img); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("bmpdump: close file: %w", err)
	}
	return path, nil
}
