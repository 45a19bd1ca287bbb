package catalog

import (
	"testing"

	"github.com/fekuna/perfume-order-service/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestScents(t *testing.T) {
	all := Scents()
	assert.Len(t, all, 30)

	all[0].Name = "changed"
	assert.Equal(t, "Blackberry", Scents()[0].Name, "catalog must not be mutable through the copy")

	for _, s := range all {
		assert.Contains(t, Categories, s.Category, s.ID)
	}
}

func TestFindScent(t *testing.T) {
	s, ok := FindScent("YJ-8213431")
	assert.True(t, ok)
	assert.Equal(t, "Yuzu", s.Name)

	_, ok = FindScent("XX-0000000")
	assert.False(t, ok)
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name     string
		term     string
		category model.ScentCategory
		want     []string
	}{
		{"by name", "rose", "", []string{"RS-2807221", "TB-2808221", "WR-2622131"}},
		{"by id", "lv-", "", []string{"LV-2812221", "LV-2225161"}},
		{"category filter", "", model.ScentMusky, []string{"MS-2621712", "IM-4324311", "FG-3430721"}},
		{"term and category", "pepper", model.ScentSpicy, []string{"LP-6317181", "PP-3218181"}},
		{"all keyword", "fig", "all", []string{"FG-3430721"}},
		{"no match", "vanilla", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{}
			for _, s := range Search(tt.term, tt.category) {
				got = append(got, s.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidColor(t *testing.T) {
	assert.True(t, ValidColor("pink"))
	assert.False(t, ValidColor("black"))
}
