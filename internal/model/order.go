package model

import "strings"

type Size string

const (
	SizeSmall Size = "10ml"
	SizeLarge Size = "50ml"
)

type Intensity string

const (
	IntensityLight  Intensity = "light"
	IntensityStrong Intensity = "strong"
)

// Category is the order flow discriminator sent as orderType.
type Category string

const (
	CategoryAI       Category = "ai"
	CategoryPerfumer Category = "perfumer"
)

// Prefix is the two-letter order number prefix of the category.
func (c Category) Prefix() string {
	switch c {
	case CategoryAI:
		return "AI"
	case CategoryPerfumer:
		return "PF"
	}
	return strings.ToUpper(string(c))
}

func (c Category) Valid() bool {
	return c == CategoryAI || c == CategoryPerfumer
}

type LineItem struct {
	ID        string    `json:"id"`
	Scent     *Scent    `json:"selectedScent"`
	Color     string    `json:"perfumeColor"`
	Intensity Intensity `json:"perfumeIntensity"`
	Label     string    `json:"labelingNickname"`
}

// LineItemGroup keeps Quantity and len(Items) equal; only the form holder resizes it.
type LineItemGroup struct {
	Size     Size       `json:"size"`
	Quantity int        `json:"quantity"`
	Items    []LineItem `json:"items"`
}

type Order struct {
	Name          string        `json:"name"`
	Phone         string        `json:"phone"`
	SocialHandle  string        `json:"xId"`
	Address       string        `json:"address"`
	DetailAddress string        `json:"detailAddress"`
	PostalCode    string        `json:"postalCode"`
	Note          string        `json:"additionalRequests"`
	Small         LineItemGroup `json:"small"`
	Large         LineItemGroup `json:"large"`
}

func NewOrder() Order {
	return Order{
		Small: LineItemGroup{Size: SizeSmall, Items: []LineItem{}},
		Large: LineItemGroup{Size: SizeLarge, Items: []LineItem{}},
	}
}

// Group returns the group for size, or nil for an unknown size.
func (o *Order) Group(size Size) *LineItemGroup {
	switch size {
	case SizeSmall:
		return &o.Small
	case SizeLarge:
		return &o.Large
	}
	return nil
}

func (o Order) TotalQuantity() int {
	return o.Small.Quantity + o.Large.Quantity
}

// FullAddress joins address and detail address with a single space.
func (o Order) FullAddress() string {
	if o.DetailAddress == "" {
		return o.Address
	}
	return o.Address + " " + o.DetailAddress
}

// Clone returns a deep copy so snapshots never alias live state.
func (o Order) Clone() Order {
	c := o
	c.Small.Items = cloneItems(o.Small.Items)
	c.Large.Items = cloneItems(o.Large.Items)
	return c
}

func cloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i, it := range items {
		out[i] = it
		if it.Scent != nil {
			s := *it.Scent
			out[i].Scent = &s
		}
	}
	return out
}
