package catalog

import (
	"strings"
	"unicode"

	"github.com/LuizVictorr/Achadoos-Amazon/models"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MatchOptions tunes how the search term is compared with product names.
type MatchOptions struct {
	// FoldDiacritics makes "teclado optico" match "Teclado Óptico".
	FoldDiacritics bool
}

// DistinctCategories returns each non-empty category once, in order of first
// appearance in products.
func DistinctCategories(products []models.Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0)
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// CategoryFacets is DistinctCategories with the number of products in each.
func CategoryFacets(products []models.Product) []models.FilterOption {
	index := make(map[string]int)
	out := make([]models.FilterOption, 0)
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if i, ok := index[p.Category]; ok {
			out[i].Count++
			continue
		}
		index[p.Category] = len(out)
		out = append(out, models.FilterOption{Label: p.Category, Value: p.Category, Count: 1})
	}
	return out
}

// Filter keeps the products whose name contains searchTerm, ignoring case, and
// whose category equals selectedCategory. Empty criteria match everything. The
// result preserves input order.
func Filter(products []models.Product, searchTerm, selectedCategory string, opts MatchOptions) []models.Product {
	needle := normalizeTerm(searchTerm, opts)
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matches(p, needle, selectedCategory, opts) {
			out = append(out, p)
		}
	}
	return out
}

// Matches reports whether a single product passes the filter.
func Matches(p models.Product, searchTerm, selectedCategory string, opts MatchOptions) bool {
	return matches(p, normalizeTerm(searchTerm, opts), selectedCategory, opts)
}

func matches(p models.Product, needle, selectedCategory string, opts MatchOptions) bool {
	if selectedCategory != "" && p.Category != selectedCategory {
		return false
	}
	if needle == "" {
		return true
	}
	return strings.Contains(normalizeTerm(p.Name, opts), needle)
}

func normalizeTerm(s string, opts MatchOptions) string {
	s = strings.ToLower(s)
	if opts.FoldDiacritics {
		s = foldDiacritics(s)
	}
	return s
}

func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
