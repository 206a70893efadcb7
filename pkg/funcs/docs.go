package funcs

import (
	"sort"

	"github.com/samber/lo"
)

// FunctionDoc is one entry of the documentation surface.
type FunctionDoc struct {
	Name   string   `json:"name"`
	Doc    string   `json:"doc"`
	Params []string `json:"params"`
}

// CategoryOverview groups the documented functions of one category.
type CategoryOverview struct {
	Category  string        `json:"category"`
	Functions []FunctionDoc `json:"functions"`
}

// categoryOrder fixes the presentation order of the function reference.
var categoryOrder = []string{"core", "operator", "conditional", "string", "date", "math", "logic"}

// Overview returns the documentation surface: every visible function grouped
// by category, categories in presentation order, functions sorted by name.
func (r *Registry) Overview() []CategoryOverview {
	visible := lo.Filter(lo.Values(r.byName), func(d *Descriptor, _ int) bool {
		return !d.Hidden
	})
	byCategory := lo.GroupBy(visible, func(d *Descriptor) string { return d.Category })

	categories := lo.Keys(byCategory)
	sort.Slice(categories, func(i, j int) bool {
		return categoryRank(categories[i]) < categoryRank(categories[j])
	})

	overview := make([]CategoryOverview, 0, len(categories))
	for _, cat := range categories {
		descriptors := byCategory[cat]
		sort.Slice(descriptors, func(i, j int) bool { return descriptors[i].Name < descriptors[j].Name })
		docs := lo.Map(descriptors, func(d *Descriptor, _ int) FunctionDoc {
			return FunctionDoc{
				Name: d.Name,
				Doc:  d.Doc,
				Params: lo.Map(d.Params, func(p ParamType, _ int) string {
					return p.String()
				}),
			}
		})
		overview = append(overview, CategoryOverview{Category: cat, Functions: docs})
	}
	return overview
}

func categoryRank(cat string) int {
	for i, c := range categoryOrder {
		if c == cat {
			return i
		}
	}
	return len(categoryOrder)
}
