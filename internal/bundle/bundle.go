// Package bundle packs generated files into a single zip archive.
package bundle

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"
)

// File is a generated file held in memory.
type File struct {
	Name string
	Data []byte
}

// Zip writes files into one archive in the given order. Entries carry the
// modification time modified so that identical input gives identical bytes.
func Zip(files []File, modified time.Time) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		if seen[f.Name] {
			return nil, fmt.Errorf("duplicate file name in archive: %s", f.Name)
		}
		seen[f.Name] = true

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to add %s to archive: %w", f.Name, err)
		}
		if _, err := w.Write(f.Data); err != nil {
			return nil, fmt.Errorf("failed to write %s to archive: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close archive: %w", err)
	}
	return buf.Bytes(), nil
}

// Unzip reads every entry of an archive produced by Zip.
func Unzip(data []byte) ([]File, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	files := make([]File, 0, len(zr.File))
	for _, zf := range zr.File {
		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", zf.Name, err)
		}
		var b bytes.Buffer
		_, err = b.ReadFrom(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", zf.Name, err)
		}
		files = append(files, File{Name: zf.Name, Data: b.Bytes()})
	}
	return files, nil
}
