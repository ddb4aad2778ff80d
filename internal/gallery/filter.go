package gallery

import (
	"strings"

	"github.com/fhuszti/asset-portal-go/internal/model"
)

// Visible derives the filtered subset of the catalog. The extension filter
// and the search term compose with a logical AND; either may be empty. Pure
// and deterministic: assets missing optional fields simply don't match.
func Visible(catalog []model.Asset, extensionFilter, searchTerm string) []model.Asset {
	ext := strings.ToLower(strings.TrimSpace(extensionFilter))
	term := strings.ToLower(strings.TrimSpace(searchTerm))

	out := make([]model.Asset, 0, len(catalog))
	for _, a := range catalog {
		if ext != "" && a.Extension() != ext {
			continue
		}
		if term != "" && !matchesTerm(a, term) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func matchesTerm(a model.Asset, term string) bool {
	if strings.Contains(strings.ToLower(a.Title), term) {
		return true
	}
	if a.Description != "" && strings.Contains(strings.ToLower(a.Description), term) {
		return true
	}
	for _, tag := range a.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}
