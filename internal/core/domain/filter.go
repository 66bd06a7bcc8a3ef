package domain

import "strings"

// FilterAll selects every tower type.
const FilterAll = "all"

// TowerFilter is the summary list type selector.
// It follows the Specification Pattern: Matches encapsulates the selection.
type TowerFilter struct {
	Type string `json:"type"` // "all" or a TowerType
}

// AllTowers is the default filter.
func AllTowers() TowerFilter {
	return TowerFilter{Type: FilterAll}
}

// ParseTowerFilter accepts "all" (or empty) and tower type names, case-insensitively.
func ParseTowerFilter(s string) (TowerFilter, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, FilterAll) {
		return AllTowers(), nil
	}
	t := TowerType(strings.ToUpper(s))
	if !t.IsKnown() {
		return TowerFilter{}, ErrInvalidFilter
	}
	return TowerFilter{Type: string(t)}, nil
}

// IsAll reports whether the filter is the identity selection.
func (f TowerFilter) IsAll() bool {
	return f.Type == "" || f.Type == FilterAll
}

// Matches reports whether a tower passes the filter.
func (f TowerFilter) Matches(t Tower) bool {
	if f.IsAll() {
		return true
	}
	return string(t.Type) == f.Type
}

// Validate rejects filters naming an unknown tower type.
func (f TowerFilter) Validate() error {
	if f.IsAll() || TowerType(f.Type).IsKnown() {
		return nil
	}
	return ErrInvalidFilter
}
