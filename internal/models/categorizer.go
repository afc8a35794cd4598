package models

// CategoryConfig is one category and its ordered keyword list as held by the store.
type CategoryConfig struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// CategorizationStats summarises one classification pass.
type CategorizationStats struct {
	Total         int
	Categorized   int
	Uncategorized int
	// PerCategory counts transactions per assigned category.
	PerCategory map[string]int
}

// NewCategorizationStats returns empty stats.
func NewCategorizationStats() CategorizationStats {
	return CategorizationStats{PerCategory: make(map[string]int)}
}

// Record counts one assignment.
func (s *CategorizationStats) Record(category string) {
	if s.PerCategory == nil {
		s.PerCategory = make(map[string]int)
	}
	s.Total++
	s.PerCategory[category]++
	if category == CategoryUncategorized {
		s.Uncategorized++
	} else {
		s.Categorized++
	}
}

// CategorizedRatio is the share of transactions that got a real category, 0 when empty.
func (s CategorizationStats) CategorizedRatio() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Categorized) / float64(s.Total)
}
