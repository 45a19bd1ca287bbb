package catalog

import (
	"strings"

	"github.com/fekuna/perfume-order-service/internal/model"
)

var scents = []model.Scent{
	{ID: "BK-2201281", Name: "Blackberry", Category: model.ScentFruity},
	{ID: "MD-8602341", Name: "Mandarin Orange", Category: model.ScentCitrus},
	{ID: "ST-3503281", Name: "Strawberry", Category: model.ScentFruity},
	{ID: "BG-8704231", Name: "Bergamot", Category: model.ScentCitrus},
	{ID: "BO-6305221", Name: "Bitter Orange", Category: model.ScentSpicy},
	{ID: "CR-3706221", Name: "Carrot", Category: model.ScentFloral},
	{ID: "RS-2807221", Name: "Rose", Category: model.ScentFloral},
	{ID: "TB-2808221", Name: "Tuberose", Category: model.ScentFloral},
	{ID: "OB-6809221", Name: "Orange Blossom", Category: model.ScentFloral},
	{ID: "TL-2810221", Name: "Tulip", Category: model.ScentFloral},
	{ID: "LM-7211441", Name: "Lime", Category: model.ScentCitrus},
	{ID: "LV-2812221", Name: "Lily of the Valley", Category: model.ScentFloral},
	{ID: "YJ-8213431", Name: "Yuzu", Category: model.ScentCitrus},
	{ID: "MT-8614231", Name: "Mint", Category: model.ScentCitrus},
	{ID: "PT-8415331", Name: "Petitgrain", Category: model.ScentCitrus},
	{ID: "SD-2216141", Name: "Sandalwood", Category: model.ScentWoody},
	{ID: "LP-6317181", Name: "Lemon Pepper", Category: model.ScentSpicy},
	{ID: "PP-3218181", Name: "Pink Pepper", Category: model.ScentSpicy},
	{ID: "SS-8219241", Name: "Sea Salt", Category: model.ScentCitrus},
	{ID: "TM-2320461", Name: "Thyme", Category: model.ScentWoody},
	{ID: "MS-2621712", Name: "Musk", Category: model.ScentMusky},
	{ID: "WR-2622131", Name: "White Rose", Category: model.ScentFloral},
	{ID: "SW-2623121", Name: "Suede", Category: model.ScentWoody},
	{ID: "IM-4324311", Name: "Italian Mandarin", Category: model.ScentMusky},
	{ID: "LV-2225161", Name: "Lavender", Category: model.ScentWoody},
	{ID: "IC-3126171", Name: "Italian Cypress", Category: model.ScentWoody},
	{ID: "SW-1227171", Name: "Smoky Blend Wood", Category: model.ScentWoody},
	{ID: "LD-2128524", Name: "Leather", Category: model.ScentSpicy},
	{ID: "VL-2129241", Name: "Violet", Category: model.ScentWoody},
	{ID: "FG-3430721", Name: "Fig", Category: model.ScentMusky},
}

// Colors are the bottle colors offered for the 10ml tier.
var Colors = []string{"red", "yellow", "green", "blue", "purple", "pink"}

// FavoriteTypes are the suggested values of FavoriteProfile.Type.
var FavoriteTypes = []string{
	"animation character",
	"idol",
	"celebrity",
	"game character",
	"virtual youtuber",
	"other",
}

var Categories = []model.ScentCategory{
	model.ScentCitrus,
	model.ScentFloral,
	model.ScentWoody,
	model.ScentMusky,
	model.ScentFruity,
	model.ScentSpicy,
}

// Scents returns a copy of the full catalog in display order.
func Scents() []model.Scent {
	return append([]model.Scent(nil), scents...)
}

// FindScent looks a scent up by id.
func FindScent(id string) (model.Scent, bool) {
	for _, s := range scents {
		if s.ID == id {
			return s, true
		}
	}
	return model.Scent{}, false
}

// Search filters by a case-insensitive substring of name or id, and by category.
// An empty category (or "all") matches every category.
func Search(term string, category model.ScentCategory) []model.Scent {
	term = strings.ToLower(strings.TrimSpace(term))
	out := []model.Scent{}
	for _, s := range scents {
		if category != "" && category != "all" && s.Category != category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(s.Name), term) &&
			!strings.Contains(strings.ToLower(s.ID), term) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func ValidColor(c string) bool {
	for _, v := range Colors {
		if v == c {
			return true
		}
	}
	return false
}
