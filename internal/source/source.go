// Package source reads raw match documents from local archive bundles.
package source

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound is returned when a bundle path does not exist.
var ErrNotFound = errors.New("source not found")

// Document is one raw match file. ID is the file name, used in logs and reports.
type Document struct {
	ID   string
	Data []byte
}

// Source yields raw match documents in arrival order.
type Source interface {
	Documents(ctx context.Context) iter.Seq2[Document, error]
	Name() string
}

// Open picks a ZipSource or DirSource based on what path points to.
func Open(path string) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}

		return nil, fmt.Errorf("failed to stat source: %w", err)
	}

	if info.IsDir() {
		return NewDirSource(path), nil
	}

	return NewZipSource(path), nil
}

func isMatchFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".json")
}

// ZipSource reads *.json entries from a zip bundle in archive order.
type ZipSource struct {
	path string
}

// NewZipSource creates a source over the zip file at path.
func NewZipSource(path string) *ZipSource {
	return &ZipSource{path: path}
}

// Name returns the bundle path.
func (z *ZipSource) Name() string {
	return z.path
}

// Documents implements Source.
func (z *ZipSource) Documents(ctx context.Context) iter.Seq2[Document, error] {
	return func(yield func(Document, error) bool) {
		reader, err := zip.OpenReader(z.path)
		if err != nil {
			yield(Document{}, fmt.Errorf("failed to open zip %s: %w", z.path, err))
			return
		}
		defer reader.Close()

		for _, file := range reader.File {
			if ctx.Err() != nil {
				yield(Document{}, ctx.Err())
				return
			}

			if file.FileInfo().IsDir() || !isMatchFile(file.Name) {
				continue
			}

			data, err := readZipEntry(file)
			if err != nil {
				yield(Document{}, fmt.Errorf("failed to read %s: %w", file.Name, err))
				return
			}

			if !yield(Document{ID: filepath.Base(file.Name), Data: data}, nil) {
				return
			}
		}
	}
}

func readZipEntry(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

// DirSource reads *.json files from a directory, sorted by name.
type DirSource struct {
	dir string
}

// NewDirSource creates a source over an extracted bundle directory.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Name returns the directory path.
func (d *DirSource) Name() string {
	return d.dir
}

// Documents implements Source.
func (d *DirSource) Documents(ctx context.Context) iter.Seq2[Document, error] {
	return func(yield func(Document, error) bool) {
		entries, err := os.ReadDir(d.dir)
		if err != nil {
			yield(Document{}, fmt.Errorf("failed to read directory %s: %w", d.dir, err))
			return
		}

		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			if !entry.IsDir() && isMatchFile(entry.Name()) {
				names = append(names, entry.Name())
			}
		}

		sort.Strings(names)

		for _, name := range names {
			if ctx.Err() != nil {
				yield(Document{}, ctx.Err())
				return
			}

			data, err := os.ReadFile(filepath.Join(d.dir, name))
			if err != nil {
				yield(Document{}, fmt.Errorf("failed to read %s: %w", name, err))
				return
			}

			if !yield(Document{ID: name, Data: data}, nil) {
				return
			}
		}
	}
}

// SliceSource serves documents already held in memory.
type SliceSource struct {
	name string
	docs []Document
}

// NewSliceSource creates a source over docs.
func NewSliceSource(name string, docs ...Document) *SliceSource {
	return &SliceSource{name: name, docs: docs}
}

// Name returns the label given at construction.
func (s *SliceSource) Name() string {
	return s.name
}

// Documents implements Source.
func (s *SliceSource) Documents(ctx context.Context) iter.Seq2[Document, error] {
	return func(yield func(Document, error) bool) {
		for _, doc := range s.docs {
			if ctx.Err() != nil {
				yield(Document{}, ctx.Err())
				return
			}

			if !yield(doc, nil) {
				return
			}
		}
	}
}
