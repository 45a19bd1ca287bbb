package model

type ScentCategory string

const (
	ScentCitrus ScentCategory = "citrus"
	ScentFloral ScentCategory = "floral"
	ScentWoody  ScentCategory = "woody"
	ScentMusky  ScentCategory = "musky"
	ScentFruity ScentCategory = "fruity"
	ScentSpicy  ScentCategory = "spicy"
)

// Scent is immutable catalog data; orders reference it by value.
type Scent struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Category ScentCategory `json:"category"`
}
