// Package summary projects a tower result list into the ranked summary rows.
package summary

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/lcalzada-xor/towermap/internal/core/domain"
)

// Select returns the towers matching filter, ranked by signal quality
// descending. Ties keep their input order. The input is not modified.
func Select(towers []domain.Tower, filter domain.TowerFilter) []domain.Tower {
	selected := make([]domain.Tower, 0, len(towers))
	for _, t := range towers {
		if filter.Matches(t) {
			selected = append(selected, t)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].SignalQuality > selected[j].SignalQuality
	})
	return selected
}

// Render builds the display rows. An empty selection yields exactly one
// placeholder row.
func Render(towers []domain.Tower, filter domain.TowerFilter) []domain.SummaryRow {
	selected := Select(towers, filter)
	if len(selected) == 0 {
		return []domain.SummaryRow{{Placeholder: true, Message: domain.NoTowersMessage}}
	}

	rows := make([]domain.SummaryRow, 0, len(selected))
	for _, t := range selected {
		rows = append(rows, Row(t))
	}
	return rows
}

// Row formats a single tower.
func Row(t domain.Tower) domain.SummaryRow {
	return domain.SummaryRow{
		TypeIcon:      domain.TowerIcon(t.Type),
		SignalIcon:    domain.SignalIcon(domain.BandFor(t.SignalQuality)),
		Type:          string(t.Type),
		Range:         strconv.FormatFloat(t.Range, 'f', -1, 64) + " meters",
		SignalQuality: fmt.Sprintf("%.2f%%", t.SignalQuality),
		Distance:      fmt.Sprintf("%.2f meters", t.Distance),
	}
}
