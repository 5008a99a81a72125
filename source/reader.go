// Package source reads Java compilation units from disk (or any URL scheme
// afs supports) uniformly, following the teacher's use of afs.Service for
// all filesystem access instead of raw os/filepath calls.
package source

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"

	"github.com/pkg/errors"
)

// Reader reads individual compilation units and whole directory trees of
// Java source through an afs.Service.
type Reader struct {
	fs afs.Service
}

// NewReader allocates a Reader backed by a fresh afs service.
func NewReader() *Reader {
	return &Reader{fs: afs.New()}
}

// Unit is one compilation unit's URL and source bytes.
type Unit struct {
	URL    string
	Source []byte
}

// ReadFile downloads a single compilation unit.
func (r *Reader) ReadFile(ctx context.Context, URL string) (*Unit, error) {
	data, err := r.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, errors.Wrapf(err, "read compilation unit %s", URL)
	}
	return &Unit{URL: URL, Source: data}, nil
}

// ReadTree walks root and downloads every ".java" file found beneath it,
// mirroring analyzer.Analyzer.analyzePackages' walk-then-download shape.
func (r *Reader) ReadTree(ctx context.Context, root string) ([]*Unit, error) {
	var units []*Unit
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, _ io.Reader) (bool, error) {
		if info.IsDir() {
			return true, nil
		}
		if !strings.EqualFold(filepath.Ext(info.Name()), ".java") {
			return true, nil
		}
		fileURL := url.Join(baseURL, parent, info.Name())
		unit, err := r.ReadFile(ctx, fileURL)
		if err != nil {
			return false, err
		}
		units = append(units, unit)
		return true, nil
	}
	if err := r.fs.Walk(ctx, root, visitor); err != nil {
		return nil, errors.Wrapf(err, "walk %s", root)
	}
	return units, nil
}
