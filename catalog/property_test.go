package catalog

import (
	"fmt"
	"testing"

	"github.com/LuizVictorr/Achadoos-Amazon/models"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func genProduct() gopter.Gen {
	return gopter.CombineGens(
		gen.AlphaString(),
		gen.OneConstOf("", "Periféricos", "Móveis", "Áudio"),
	).Map(func(vals []interface{}) models.Product {
		return models.Product{Name: vals[0].(string), Category: vals[1].(string)}
	})
}

func genSnapshot() gopter.Gen {
	return gen.SliceOf(genProduct()).Map(func(ps []models.Product) []models.Product {
		for i := range ps {
			ps[i].ID = fmt.Sprintf("id-%d", i)
		}
		return ps
	})
}

func isSubsequence(sub, of []models.Product) bool {
	j := 0
	for i := 0; i < len(of) && j < len(sub); i++ {
		if of[i] == sub[j] {
			j++
		}
	}
	return j == len(sub)
}

func TestProperty_FilterIsOrderedSubsequence(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("filter output is a subsequence of its input", prop.ForAll(
		func(snapshot []models.Product, term string, cat string) bool {
			return isSubsequence(Filter(snapshot, term, cat, MatchOptions{}), snapshot)
		},
		genSnapshot(),
		gen.AlphaString(),
		gen.OneConstOf("", "Periféricos", "Móveis"),
	))

	properties.Property("every kept product matches", prop.ForAll(
		func(snapshot []models.Product, term string) bool {
			for _, p := range Filter(snapshot, term, "", MatchOptions{}) {
				if !Matches(p, term, "", MatchOptions{}) {
					return false
				}
			}
			return true
		},
		genSnapshot(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestProperty_DistinctCategories(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("categories are unique and observed", prop.ForAll(
		func(snapshot []models.Product) bool {
			seen := map[string]bool{}
			for _, c := range DistinctCategories(snapshot) {
				if seen[c] {
					return false
				}
				seen[c] = true
				found := false
				for _, p := range snapshot {
					if p.Category == c {
						found = true
						break
					}
				}
				if !found {
					return false
				}
			}
			return true
		},
		genSnapshot(),
	))

	properties.TestingRun(t)
}

func TestProperty_PagesPartitionList(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("pages cover the list exactly once", prop.ForAll(
		func(n int) bool {
			items := numbered(n)
			_, total := Paginate(items, DefaultPageSize, 1)
			sum := 0
			for page := 1; page <= total; page++ {
				got, _ := Paginate(items, DefaultPageSize, page)
				if page < total && len(got) != DefaultPageSize {
					return false
				}
				sum += len(got)
			}
			return sum == n
		},
		gen.IntRange(0, 400),
	))

	properties.TestingRun(t)
}

func TestProperty_NavigationStaysInRange(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 50
	properties := gopter.NewProperties(params)

	properties.Property("next/prev never leave [1, max(total,1)]", prop.ForAll(
		func(n int, moves []bool) bool {
			s := NewSession(NewLoader(numberedStore(n), nil))
			if err := s.Load(t.Context()); err != nil {
				return false
			}
			for _, forward := range moves {
				if forward {
					s.Next()
				} else {
					s.Prev()
				}
				v := s.View()
				if v.Page < 1 || (v.TotalPages > 0 && v.Page > v.TotalPages) {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 200),
		gen.SliceOf(gen.Bool()),
	))

	properties.TestingRun(t)
}
