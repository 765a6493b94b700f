package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/deepikaoppangi/lbg-financial-overview/internal/models"
	"github.com/deepikaoppangi/lbg-financial-overview/internal/utils"
	"golang.org/x/sync/errgroup"
)

const listConcurrency = 8

// FileStore reads profiles from a directory of JSON, YAML or XML documents.
// Nothing is cached; every call re-reads the files.
type FileStore struct {
	dir string
}

// NewFileStore initializes a store rooted at dir
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Load reads and parses the profile document for id
func (s *FileStore) Load(ctx context.Context, id string) (*models.Profile, error) {
	if !ValidProfileID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidProfileID, id)
	}
	for _, ext := range profileExtensions {
		path := filepath.Join(s.dir, id+ext)
		p, err := s.readFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		p.ID = id
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
}

// List parses every profile document in the directory and returns their ids
// and display names. Unreadable documents are skipped.
func (s *FileStore) List(ctx context.Context) ([]models.ProfileInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.ProfileInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile directory: %w", err)
	}

	paths := candidatePaths(entries)
	ids := make([]string, 0, len(paths))
	for id := range paths {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	infos := make([]*models.ProfileInfo, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(listConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := s.readFile(filepath.Join(s.dir, paths[id]))
			if err != nil {
				return nil
			}
			name := p.Name
			if name == "" {
				name = utils.DisplayName(id)
			}
			infos[i] = &models.ProfileInfo{ID: id, Name: name}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]models.ProfileInfo, 0, len(infos))
	for _, info := range infos {
		if info != nil {
			out = append(out, *info)
		}
	}
	return out, nil
}

// candidatePaths maps each profile id to its file name, keeping the first
// extension in lookup order when several files share an id
func candidatePaths(entries []os.DirEntry) map[string]string {
	rank := make(map[string]int, len(profileExtensions))
	for i, ext := range profileExtensions {
		rank[ext] = i
	}

	paths := map[string]string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		r, ok := rank[ext]
		if !ok {
			continue
		}
		id := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if !ValidProfileID(id) {
			continue
		}
		if cur, seen := paths[id]; seen && rank[strings.ToLower(filepath.Ext(cur))] <= r {
			continue
		}
		paths[id] = e.Name()
	}
	return paths
}

func (s *FileStore) readFile(path string) (*models.Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decode, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("unsupported profile format: %s", path)
	}
	p, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	normalize(p)
	return p, nil
}
