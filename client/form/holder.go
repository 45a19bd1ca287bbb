// Package form holds an in-progress order between edits. Nothing here is
// persisted; submission reads a Snapshot.
package form

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/fekuna/perfume-order-service/internal/model"
	"github.com/fekuna/perfume-order-service/internal/pricing"
	"github.com/fekuna/perfume-order-service/internal/validation"
	"github.com/google/uuid"
)

var (
	ErrUnknownField = errors.New("unknown form field")
	ErrUnknownSize  = errors.New("unknown size tier")
	ErrItemRange    = errors.New("item position out of range")
	ErrImageLimit   = errors.New("image limit reached")
	ErrUnknownSlot  = errors.New("unknown image slot")
)

type Field string

const (
	FieldName          Field = "name"
	FieldPhone         Field = "phone"
	FieldSocialHandle  Field = "xId"
	FieldAddress       Field = "address"
	FieldDetailAddress Field = "detailAddress"
	FieldPostalCode    Field = "postalCode"
	FieldNote          Field = "additionalRequests"
)

// State is a deep copy of the form at one point in time.
type State struct {
	Category model.Category
	Order    model.Order
	Favorite model.FavoriteProfile
}

// FavoritePtr returns the favorite profile for perfumer orders and nil otherwise.
func (s State) FavoritePtr() *model.FavoriteProfile {
	if s.Category != model.CategoryPerfumer {
		return nil
	}
	f := s.Favorite.Clone()
	return &f
}

// imageSlot is reserved before an upload starts; url is empty until it completes.
type imageSlot struct {
	id  string
	url string
}

type Holder struct {
	mu       sync.Mutex
	category model.Category
	order    model.Order
	favorite model.FavoriteProfile
	slots    []imageSlot
}

func NewHolder(category model.Category) *Holder {
	return &Holder{
		category: category,
		order:    model.NewOrder(),
	}
}

func (h *Holder) Snapshot() State {
	h.mu.Lock()
	defer h.mu.Unlock()

	fav := h.favorite.Clone()
	fav.ImageURLs = h.filledURLs()
	return State{
		Category: h.category,
		Order:    h.order.Clone(),
		Favorite: fav,
	}
}

func (h *Holder) SetCategory(c model.Category) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.category = c
}

func (h *Holder) SetField(f Field, value string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch f {
	case FieldName:
		h.order.Name = value
	case FieldPhone:
		h.order.Phone = value
	case FieldSocialHandle:
		h.order.SocialHandle = value
	case FieldAddress:
		h.order.Address = value
	case FieldDetailAddress:
		h.order.DetailAddress = value
	case FieldPostalCode:
		h.order.PostalCode = value
	case FieldNote:
		h.order.Note = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
	return nil
}

// Resize sets the group's quantity to n. Items below n keep their position and
// identity; new positions get a fresh item with light intensity and no scent.
func (h *Holder) Resize(size model.Size, n int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.resize(size, n)
}

// Step changes the group's quantity by delta, never going below zero.
func (h *Holder) Step(size model.Size, delta int) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	g := h.order.Group(size)
	if g == nil {
		return fmt.Errorf("%w: %s", ErrUnknownSize, size)
	}
	return h.resize(size, g.Quantity+delta)
}

func (h *Holder) resize(size model.Size, n int) error {
	g := h.order.Group(size)
	if g == nil {
		return fmt.Errorf("%w: %s", ErrUnknownSize, size)
	}
	if n < 0 {
		n = 0
	}

	items := make([]model.LineItem, n)
	copy(items, g.Items)
	for i := len(g.Items); i < n; i++ {
		items[i] = newItem()
	}
	g.Items = items
	g.Quantity = n
	return nil
}

func newItem() model.LineItem {
	return model.LineItem{
		ID:        uuid.New().String(),
		Intensity: model.IntensityLight,
	}
}

// PatchItem applies fn to the item at idx. The item's identifier cannot be changed.
func (h *Holder) PatchItem(size model.Size, idx int, fn func(*model.LineItem)) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	g := h.order.Group(size)
	if g == nil {
		return fmt.Errorf("%w: %s", ErrUnknownSize, size)
	}
	if idx < 0 || idx >= len(g.Items) {
		return fmt.Errorf("%w: %s #%d", ErrItemRange, size, idx)
	}

	item := g.Items[idx]
	id := item.ID
	if item.Scent != nil {
		s := *item.Scent
		item.Scent = &s
	}
	fn(&item)
	item.ID = id
	g.Items[idx] = item
	return nil
}

// ReplaceFavorite swaps the whole profile. Its image URLs become the filled
// image slots; uploads still in flight keep their reservations.
func (h *Holder) ReplaceFavorite(f model.FavoriteProfile) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.setFavorite(f)
}

// UpdateFavorite applies fn to a copy of the current profile and stores the result.
func (h *Holder) UpdateFavorite(fn func(*model.FavoriteProfile)) {
	h.mu.Lock()
	defer h.mu.Unlock()

	f := h.favorite.Clone()
	f.ImageURLs = h.filledURLs()
	fn(&f)
	h.setFavorite(f)
}

func (h *Holder) setFavorite(f model.FavoriteProfile) {
	f = f.Clone()

	var pending []imageSlot
	for _, s := range h.slots {
		if s.url == "" {
			pending = append(pending, s)
		}
	}
	room := model.MaxImageURLs - len(pending)
	urls := f.ImageURLs
	if len(urls) > room {
		urls = urls[:room]
	}

	slots := make([]imageSlot, 0, len(urls)+len(pending))
	for _, u := range urls {
		slots = append(slots, imageSlot{id: uuid.New().String(), url: u})
	}
	h.slots = append(slots, pending...)

	f.ImageURLs = nil
	h.favorite = f
}

// AddKeyword appends a keyword. Blank and repeated keywords are ignored.
func (h *Holder) AddKeyword(k string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	list, err := addBounded(h.favorite.Keywords, k, model.MaxKeywords, "validation.keyword_limit")
	if err != nil {
		return err
	}
	h.favorite.Keywords = list
	return nil
}

func (h *Holder) AddColor(c string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	list, err := addBounded(h.favorite.Colors, c, model.MaxColors, "validation.color_limit")
	if err != nil {
		return err
	}
	h.favorite.Colors = list
	return nil
}

func addBounded(list []string, v string, max int, limitID string) ([]string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return list, nil
	}
	for _, existing := range list {
		if existing == v {
			return list, nil
		}
	}
	if len(list) >= max {
		return list, &validation.Error{MessageID: limitID, Data: map[string]interface{}{"Max": max}}
	}
	return append(list, v), nil
}

// RemoveKeyword drops the keyword at idx and reports whether anything was removed.
func (h *Holder) RemoveKeyword(idx int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	var ok bool
	h.favorite.Keywords, ok = removeAt(h.favorite.Keywords, idx)
	return ok
}

func (h *Holder) RemoveColor(idx int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	var ok bool
	h.favorite.Colors, ok = removeAt(h.favorite.Colors, idx)
	return ok
}

func removeAt(list []string, idx int) ([]string, bool) {
	if idx < 0 || idx >= len(list) {
		return list, false
	}
	out := make([]string, 0, len(list)-1)
	out = append(out, list[:idx]...)
	return append(out, list[idx+1:]...), true
}

// ReserveImageSlot claims a position for an upload about to start. Positions
// are ordered by reservation, so concurrent uploads land deterministically.
func (h *Holder) ReserveImageSlot() (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.slots) >= model.MaxImageURLs {
		return "", ErrImageLimit
	}
	id := uuid.New().String()
	h.slots = append(h.slots, imageSlot{id: id})
	return id, nil
}

func (h *Holder) FillImageSlot(id, url string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range h.slots {
		if h.slots[i].id == id {
			h.slots[i].url = url
			return nil
		}
	}
	return ErrUnknownSlot
}

// ReleaseImageSlot gives a reservation back, e.g. after a failed upload.
func (h *Holder) ReleaseImageSlot(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, s := range h.slots {
		if s.id == id {
			h.slots = append(h.slots[:i:i], h.slots[i+1:]...)
			return
		}
	}
}

// RemoveImage drops the idx-th uploaded URL.
func (h *Holder) RemoveImage(idx int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := 0
	for i, s := range h.slots {
		if s.url == "" {
			continue
		}
		if n == idx {
			h.slots = append(h.slots[:i:i], h.slots[i+1:]...)
			return true
		}
		n++
	}
	return false
}

func (h *Holder) filledURLs() []string {
	urls := []string{}
	for _, s := range h.slots {
		if s.url != "" {
			urls = append(urls, s.url)
		}
	}
	return urls
}

// Reset clears everything but the category, e.g. after a successful submission.
func (h *Holder) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.order = model.NewOrder()
	h.favorite = model.FavoriteProfile{}
	h.slots = nil
}

func (h *Holder) Quote(t pricing.Table) pricing.Quote {
	h.mu.Lock()
	defer h.mu.Unlock()
	return t.QuoteOrder(h.order)
}
