package distance

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pierrec/lz4"
)

// CompressedSuffix marks a distance file stored lz4-compressed
const CompressedSuffix = ".lz4"

// SaveFile writes the oracle to path, compressing when path ends in .lz4
func SaveFile(path string, o *Oracle) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create distance file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close distance file: %w", cerr)
		}
	}()

	if !strings.HasSuffix(path, CompressedSuffix) {
		return Write(f, o)
	}
	zw := lz4.NewWriter(f)
	if err := Write(zw, o); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flush compressed distance file: %w", err)
	}
	return nil
}

// LoadFile reads an oracle previously written by SaveFile
func LoadFile(path string) (*Oracle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open distance file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, CompressedSuffix) {
		r = lz4.NewReader(f)
	}
	o, err := Read(r)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return o, nil
}
