package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Store is the read side of the product cache. The snapshot is loaded
// lazily on first access and memoized for the lifetime of the process;
// a new cache write is only picked up through an explicit Reload, never
// implicitly by a read.
type Store struct {
	path string
	once sync.Once
	mu   sync.RWMutex
	snap *Snapshot
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) load() {
	s.once.Do(func() {
		snap, err := readSnapshot(s.path)
		if err != nil {
			slog.Warn("Product cache unavailable, serving empty catalog", "path", s.path, "error", err)
			snap = &Snapshot{Products: []Product{}}
		}
		s.mu.Lock()
		s.snap = snap
		s.mu.Unlock()
	})
}

// Reload replaces the memoized snapshot with the current file content.
// Exposed to operational tooling only.
func (s *Store) Reload() error {
	s.load()

	snap, err := readSnapshot(s.path)
	if err != nil {
		return fmt.Errorf("failed to reload product cache: %w", err)
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	return nil
}

func readSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse cache file: %w", err)
	}
	if snap.Products == nil {
		snap.Products = []Product{}
	}
	return &snap, nil
}

// GetAll returns every cached product, or an empty list when the cache
// file is absent. It never fails towards callers.
func (s *Store) GetAll() []Product {
	s.load()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Products
}

func (s *Store) GetByCategory(category Category) []Product {
	products := s.GetAll()
	result := make([]Product, 0)
	for _, p := range products {
		if p.Category == category {
			result = append(result, p)
		}
	}
	return result
}

// GetBySubCategory matches the subcategory case-insensitively.
func (s *Store) GetBySubCategory(category Category, subCategory string) []Product {
	products := s.GetAll()
	result := make([]Product, 0)
	for _, p := range products {
		if p.Category == category && strings.EqualFold(p.SubCategory, subCategory) {
			result = append(result, p)
		}
	}
	return result
}

// GetSubCategories returns the distinct subcategories present for a
// category, sorted with Danish collation.
func (s *Store) GetSubCategories(category Category) []string {
	products := s.GetAll()

	seen := make(map[string]struct{})
	subCategories := make([]string, 0)
	for _, p := range products {
		if p.Category != category || p.SubCategory == "" {
			continue
		}
		if _, ok := seen[p.SubCategory]; ok {
			continue
		}
		seen[p.SubCategory] = struct{}{}
		subCategories = append(subCategories, p.SubCategory)
	}

	collator := NewCollator()
	sort.Slice(subCategories, func(i, j int) bool {
		return collator.CompareString(subCategories[i], subCategories[j]) < 0
	})
	return subCategories
}

// GetFeatured returns the first limit in-stock products in stored order.
func (s *Store) GetFeatured(limit int) []Product {
	products := s.GetAll()
	result := make([]Product, 0, limit)
	for _, p := range products {
		if !p.InStock {
			continue
		}
		result = append(result, p)
		if len(result) >= limit {
			break
		}
	}
	return result
}

// Search matches the query case-insensitively against name,
// description and merchant.
func (s *Store) Search(query string) []Product {
	products := s.GetAll()
	q := strings.ToLower(query)

	result := make([]Product, 0)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Merchant), q) {
			result = append(result, p)
		}
	}
	return result
}

func (s *Store) GetBySlug(slug string) *Product {
	products := s.GetAll()
	for i := range products {
		if products[i].Slug == slug {
			return &products[i]
		}
	}
	return nil
}

func (s *Store) Count() int {
	return len(s.GetAll())
}

func (s *Store) LastUpdated() string {
	s.load()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.LastUpdated
}

// WriteSnapshot persists the products as the new cache content, fully
// replacing any prior file. The write goes through a temp file and a
// rename so a crashed sync leaves the previous cache intact.
func WriteSnapshot(path string, products []Product) error {
	snap := Snapshot{
		Products:    products,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace cache file: %w", err)
	}

	return nil
}
