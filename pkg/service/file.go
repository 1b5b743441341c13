package service

import (
	"context"
	"os"
	"path/filepath"
)

// DefaultRoot is the list directory used when none is configured
const DefaultRoot = ".machi"

// LocalSource reads every entry in a single directory as a list file. The scan is
// not recursive and there's no extension filtering: anything in the directory is
// expected to be a list.
type LocalSource struct {
	Root string
}

// NewLocalSource ...
func NewLocalSource(root string) *LocalSource {
	return &LocalSource{Root: root}
}

// Name ...
func (s *LocalSource) Name() string {
	return "dir:" + s.Root
}

// Load returns one result per directory entry, in os.ReadDir order
func (s *LocalSource) Load(ctx context.Context) ([]LoadResult, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		return nil, err
	}

	results := make([]LoadResult, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := filepath.Join(s.Root, e.Name())
		r := LoadResult{Source: s.Name(), Path: p}
		dat, err := os.ReadFile(p)
		if err != nil {
			r.Err = err
		} else {
			r.List, r.Err = ParseTodoList(dat)
		}
		results = append(results, r)
	}
	return results, nil
}
