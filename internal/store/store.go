// Package store owns the persistent category rule set: an ordered mapping from
// category name to the keywords that select it. The order of categories and of
// keywords decides classification tie-breaks, so it is preserved through every
// load and save.
package store

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/budget-csv/internal/fileutils"
	"fjacquet/budget-csv/internal/logging"
	"fjacquet/budget-csv/internal/models"
)

// DefaultCategoriesFile is the category file used when none is configured.
const DefaultCategoriesFile = "categories.json"

// CategoryStore is the single in-memory copy of the category rule set. Every
// successful mutation is written through to its file before returning.
//
// The store is not safe for concurrent use; one command owns it at a time.
type CategoryStore struct {
	path       string
	format     Format
	categories []models.CategoryConfig
	logger     logging.Logger
}

// NewCategoryStore returns a store holding only the fallback category, persisting to
// path. Nothing is read or written until a mutation or Save.
func NewCategoryStore(path string, logger logging.Logger) *CategoryStore {
	if path == "" {
		path = DefaultCategoriesFile
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &CategoryStore{
		path:       path,
		format:     FormatForPath(path),
		categories: defaultCategories(),
		logger:     logger,
	}
}

func defaultCategories() []models.CategoryConfig {
	return []models.CategoryConfig{{Name: models.CategoryUncategorized, Keywords: []string{}}}
}

// Load reads the category file at path. A missing, unreadable or malformed file is
// treated as a first run and yields the default store; Load never fails.
func Load(path string, logger logging.Logger) *CategoryStore {
	s := NewCategoryStore(path, logger)
	log := s.logger.WithField(logging.FieldFile, s.path)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info("Category file not found, starting with default categories")
		} else {
			log.WithError(err).Warn("Category file unreadable, starting with default categories")
		}
		return s
	}

	categories, err := decode(data, s.format)
	if err != nil {
		log.WithError(err).Warn("Category file is not a valid category mapping, starting with default categories")
		return s
	}

	s.categories = sanitize(categories, log)
	log.Debug("Loaded categories", logging.F(logging.FieldCount, len(s.categories)))
	return s
}

// sanitize enforces the store invariants on data read from disk: names are non-empty,
// keywords are trimmed, non-empty and unique per category, and the fallback
// category exists.
func sanitize(in []models.CategoryConfig, log logging.Logger) []models.CategoryConfig {
	out := make([]models.CategoryConfig, 0, len(in)+1)
	hasFallback := false

	for _, category := range in {
		if strings.TrimSpace(category.Name) == "" {
			log.Debug("Dropping category with empty name")
			continue
		}
		if category.Name == models.CategoryUncategorized {
			hasFallback = true
		}

		keywords := make([]string, 0, len(category.Keywords))
		seen := make(map[string]bool, len(category.Keywords))
		for _, keyword := range category.Keywords {
			keyword = strings.TrimSpace(keyword)
			if keyword == "" || seen[keyword] {
				log.Debug("Dropping empty or duplicate keyword",
					logging.F(logging.FieldCategory, category.Name),
					logging.F(logging.FieldKeyword, keyword))
				continue
			}
			seen[keyword] = true
			keywords = append(keywords, keyword)
		}
		out = append(out, models.CategoryConfig{Name: category.Name, Keywords: keywords})
	}

	if !hasFallback {
		out = append(out, defaultCategories()...)
	}
	return out
}

// Save writes the full mapping to the store's file, replacing its previous content.
// The write is atomic, so a failed save leaves the previous file intact.
func (s *CategoryStore) Save() error {
	data, err := encode(s.categories, s.format)
	if err != nil {
		return fmt.Errorf("error encoding categories: %w", err)
	}

	if err := fileutils.WriteFileAtomic(s.path, data, models.PermissionExportFile); err != nil {
		return fmt.Errorf("error saving category file: %w", err)
	}

	s.logger.Debug("Saved categories",
		logging.F(logging.FieldFile, s.path),
		logging.F(logging.FieldCount, len(s.categories)))
	return nil
}

// CreateCategory adds a new, empty category named name (trimmed). It reports whether
// the category was added; blank or existing names are ignored. When the new category
// cannot be saved it is still kept in memory and the save error is returned.
func (s *CategoryStore) CreateCategory(name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" || s.Has(name) {
		return false, nil
	}

	s.categories = append(s.categories, models.CategoryConfig{Name: name, Keywords: []string{}})
	s.logger.Info("Created category", logging.F(logging.FieldCategory, name))

	if err := s.Save(); err != nil {
		return true, err
	}
	return true, nil
}

// AddKeyword appends keyword (trimmed) to category (trimmed), creating the category if
// it does not exist yet. It reports whether the rule set changed: blank categories,
// blank keywords and keywords already present in that category (exact match after
// trimming) change nothing. As with CreateCategory, a save failure keeps the in-memory
// change and returns the error.
func (s *CategoryStore) AddKeyword(category, keyword string) (bool, error) {
	category = strings.TrimSpace(category)
	keyword = strings.TrimSpace(keyword)
	if category == "" || keyword == "" {
		return false, nil
	}

	i := s.indexOf(category)
	if i < 0 {
		s.categories = append(s.categories, models.CategoryConfig{Name: category, Keywords: []string{}})
		i = len(s.categories) - 1
	}

	for _, existing := range s.categories[i].Keywords {
		if existing == keyword {
			return false, nil
		}
	}

	s.categories[i].Keywords = append(s.categories[i].Keywords, keyword)
	s.logger.Debug("Added keyword",
		logging.F(logging.FieldCategory, category),
		logging.F(logging.FieldKeyword, keyword))

	if err := s.Save(); err != nil {
		return true, err
	}
	return true, nil
}

func (s *CategoryStore) indexOf(name string) int {
	for i, category := range s.categories {
		if category.Name == name {
			return i
		}
	}
	return -1
}

// Has reports whether a category named name exists.
func (s *CategoryStore) Has(name string) bool {
	return s.indexOf(name) >= 0
}

// Names returns the category names in store order.
func (s *CategoryStore) Names() []string {
	names := make([]string, len(s.categories))
	for i, category := range s.categories {
		names[i] = category.Name
	}
	return names
}

// Keywords returns a copy of the keyword list of name, or nil if there is no such
// category.
func (s *CategoryStore) Keywords(name string) []string {
	i := s.indexOf(name)
	if i < 0 {
		return nil
	}
	return append([]string{}, s.categories[i].Keywords...)
}

// Categories returns a deep copy of the ordered rule set.
func (s *CategoryStore) Categories() []models.CategoryConfig {
	out := make([]models.CategoryConfig, len(s.categories))
	for i, category := range s.categories {
		out[i] = models.CategoryConfig{
			Name:     category.Name,
			Keywords: append([]string{}, category.Keywords...),
		}
	}
	return out
}

// Len returns the number of categories, the fallback included.
func (s *CategoryStore) Len() int {
	return len(s.categories)
}

// Path returns the file the store persists to.
func (s *CategoryStore) Path() string {
	return s.path
}
