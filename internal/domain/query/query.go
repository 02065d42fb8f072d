// Package query filters, sorts, and paginates the in-memory collection.
// Every function is pure with respect to its input slice.
package query

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/okian/pokedex/internal/domain/model"
)

// Sort fields and directions accepted by Params.
const (
	SortByID   = "id"
	SortByName = "name"
	OrderAsc   = "asc"
	OrderDesc  = "desc"
)

// Pagination defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 20
)

// Params are the composable list-query parameters. Every field is optional;
// zero values disable the corresponding step.
type Params struct {
	// Search matches case-insensitively on name substring or exactly on the
	// id rendered as a string.
	Search string

	// Types keeps only pokemon carrying every listed tag (intersection).
	Types []string

	// Generation keeps only pokemon of that generation when positive.
	Generation int

	// Sort orders by "id" or "name"; Order flips to descending with "desc".
	// Order has no effect unless Sort is set.
	Sort  string
	Order string
}

// Page is one slice of a filtered result plus its pagination envelope.
type Page struct {
	Count      int             `json:"count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
	Pokemon    []model.Pokemon `json:"pokemon"`
}

// Apply runs search, type, and generation filters followed by the sort, in
// that fixed order, and returns a fresh slice.
func Apply(list []model.Pokemon, p Params) []model.Pokemon {
	out := make([]model.Pokemon, len(list))
	copy(out, list)

	if p.Search != "" {
		out = filter(out, bySearchTerm(p.Search))
	}
	if len(p.Types) > 0 {
		out = filter(out, byTypes(p.Types))
	}
	if p.Generation > 0 {
		out = filter(out, byGeneration(p.Generation))
	}

	switch p.Sort {
	case SortByID:
		sortByID(out, p.Order == OrderDesc)
	case SortByName:
		sortByName(out, p.Order == OrderDesc)
	}
	return out
}

// Paginate slices list into the requested page. Page and limit fall back to
// their defaults when non-positive; a page past the end yields an empty page
// rather than an error.
func Paginate(list []model.Pokemon, page, limit int) Page {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	offset := (page - 1) * limit
	end := offset + limit
	if offset > len(list) {
		offset = len(list)
	}
	if end > len(list) {
		end = len(list)
	}

	return Page{
		Count:      len(list),
		Page:       page,
		Limit:      limit,
		TotalPages: (len(list) + limit - 1) / limit,
		Pokemon:    list[offset:end],
	}
}

func filter(list []model.Pokemon, keep func(model.Pokemon) bool) []model.Pokemon {
	out := list[:0]
	for _, p := range list {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func bySearchTerm(term string) func(model.Pokemon) bool {
	term = strings.ToLower(term)
	return func(p model.Pokemon) bool {
		return strings.Contains(strings.ToLower(p.Name), term) || strconv.Itoa(p.ID) == term
	}
}

func byTypes(wanted []string) func(model.Pokemon) bool {
	return func(p model.Pokemon) bool {
		for _, w := range wanted {
			found := false
			for _, t := range p.Types {
				if strings.EqualFold(t, w) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}
}

func byGeneration(gen int) func(model.Pokemon) bool {
	return func(p model.Pokemon) bool {
		return p.Generation == gen
	}
}

func sortByID(list []model.Pokemon, desc bool) {
	sort.SliceStable(list, func(i, j int) bool {
		if desc {
			return list[j].ID < list[i].ID
		}
		return list[i].ID < list[j].ID
	})
}

func sortByName(list []model.Pokemon, desc bool) {
	// Collators are not safe for concurrent use; build one per sort.
	c := collate.New(language.English)
	sort.SliceStable(list, func(i, j int) bool {
		cmp := c.CompareString(list[i].Name, list[j].Name)
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}
