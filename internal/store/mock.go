package store

import (
	"strings"

	"fjacquet/budget-csv/internal/models"
)

// MockCategoryStore is an in-memory stand-in for CategoryStore in tests of its
// callers. It applies the same keyword rules but never touches the disk; SaveError
// simulates a persistence failure after the in-memory change.
type MockCategoryStore struct {
	Rules     []models.CategoryConfig
	SaveError error

	// AddKeywordCalls records every AddKeyword call, in order.
	AddKeywordCalls []MockAddKeywordCall
}

// MockAddKeywordCall is one recorded AddKeyword invocation.
type MockAddKeywordCall struct {
	Category string
	Keyword  string
}

// Categories returns a copy of Rules.
func (m *MockCategoryStore) Categories() []models.CategoryConfig {
	out := make([]models.CategoryConfig, len(m.Rules))
	for i, rule := range m.Rules {
		out[i] = models.CategoryConfig{Name: rule.Name, Keywords: append([]string{}, rule.Keywords...)}
	}
	return out
}

// Has reports whether Rules contains name.
func (m *MockCategoryStore) Has(name string) bool {
	for _, rule := range m.Rules {
		if rule.Name == name {
			return true
		}
	}
	return false
}

// AddKeyword mirrors CategoryStore.AddKeyword.
func (m *MockCategoryStore) AddKeyword(category, keyword string) (bool, error) {
	m.AddKeywordCalls = append(m.AddKeywordCalls, MockAddKeywordCall{Category: category, Keyword: keyword})

	category = strings.TrimSpace(category)
	keyword = strings.TrimSpace(keyword)
	if category == "" || keyword == "" {
		return false, nil
	}
	i := -1
	for j, rule := range m.Rules {
		if rule.Name == category {
			i = j
			break
		}
	}
	if i < 0 {
		m.Rules = append(m.Rules, models.CategoryConfig{Name: category})
		i = len(m.Rules) - 1
	}
	for _, existing := range m.Rules[i].Keywords {
		if existing == keyword {
			return false, nil
		}
	}
	m.Rules[i].Keywords = append(m.Rules[i].Keywords, keyword)
	return true, m.SaveError
}
