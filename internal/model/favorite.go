package model

const (
	MaxKeywords  = 10
	MaxColors    = 5
	MaxImageURLs = 3
)

// FavoriteProfile is the personalization payload of perfumer orders.
type FavoriteProfile struct {
	Name            string   `json:"name"`
	Type            string   `json:"type"`
	Personality     string   `json:"personality"`
	Characteristics string   `json:"characteristics"`
	Mood            string   `json:"mood"`
	SpecialMemory   string   `json:"specialMemory"`
	DesiredVibe     string   `json:"desiredVibe"`
	FavoriteReason  string   `json:"favoriteReason"`
	Keywords        []string `json:"keywords"`
	Colors          []string `json:"colors"`
	ImageURLs       []string `json:"imageUrls"`
}

func (f FavoriteProfile) Clone() FavoriteProfile {
	c := f
	c.Keywords = append([]string{}, f.Keywords...)
	c.Colors = append([]string{}, f.Colors...)
	c.ImageURLs = append([]string{}, f.ImageURLs...)
	return c
}
