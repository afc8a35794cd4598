package categorizer

import (
	"strings"

	"fjacquet/budget-csv/internal/models"
)

// rule is a category with its keywords normalised for matching.
type rule struct {
	category string
	keywords []string
}

// Rules is a rule set compiled for repeated classification. Compile once per batch
// rather than once per transaction.
type Rules struct {
	rules []rule
}

// Compile prepares categories for matching. The fallback category and categories
// without any usable keyword are left out; keywords are trimmed and lower-cased.
// Category and keyword order are kept because the first match wins.
func Compile(categories []models.CategoryConfig) Rules {
	compiled := make([]rule, 0, len(categories))
	for _, category := range categories {
		if category.Name == models.CategoryUncategorized || len(category.Keywords) == 0 {
			continue
		}
		keywords := make([]string, 0, len(category.Keywords))
		for _, keyword := range category.Keywords {
			keyword = strings.ToLower(strings.TrimSpace(keyword))
			if keyword != "" {
				keywords = append(keywords, keyword)
			}
		}
		if len(keywords) == 0 {
			continue
		}
		compiled = append(compiled, rule{category: category.Name, keywords: keywords})
	}
	return Rules{rules: compiled}
}

// Match returns the category of the first rule having a keyword contained in details
// (case-insensitive substring), and the keyword that matched. Blank details, or no
// match, give the fallback category and an empty keyword.
func (r Rules) Match(details string) (category, keyword string) {
	normalized := strings.ToLower(strings.TrimSpace(details))
	if normalized == "" {
		return models.CategoryUncategorized, ""
	}
	for _, rule := range r.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(normalized, kw) {
				return rule.category, kw
			}
		}
	}
	return models.CategoryUncategorized, ""
}

// Len returns the number of categories that can match.
func (r Rules) Len() int {
	return len(r.rules)
}

// Classify selects the category for one transaction description. It is a pure
// function of its arguments: categories are scanned in order, each category's
// keywords in order, and the first keyword found anywhere in details decides.
func Classify(details string, categories []models.CategoryConfig) string {
	category, _ := Compile(categories).Match(details)
	return category
}
