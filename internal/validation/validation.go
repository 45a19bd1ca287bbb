package validation

import (
	"fmt"
	"strings"

	"github.com/fekuna/perfume-order-service/internal/model"
)

// Error is a rejected submission. MessageID and Data feed the localized alert.
type Error struct {
	MessageID string
	Data      map[string]interface{}
}

func (e *Error) Error() string {
	if len(e.Data) == 0 {
		return e.MessageID
	}
	return fmt.Sprintf("%s %v", e.MessageID, e.Data)
}

func newError(id string, data map[string]interface{}) *Error {
	return &Error{MessageID: id, Data: data}
}

// ValidateOrder runs the submission-time checks. The first failing check wins,
// matching the one-alert-at-a-time behavior of the order form.
func ValidateOrder(category model.Category, o model.Order, fav *model.FavoriteProfile) error {
	if category == "" {
		return newError("order.missing_category", nil)
	}
	if !category.Valid() {
		return newError("order.unknown_category", map[string]interface{}{"Category": string(category)})
	}

	for _, g := range []model.LineItemGroup{o.Small, o.Large} {
		if g.Quantity < 0 || len(g.Items) != g.Quantity {
			return newError("validation.quantity_invalid", map[string]interface{}{
				"Size":     string(g.Size),
				"Quantity": g.Quantity,
				"Items":    len(g.Items),
			})
		}
	}
	if o.TotalQuantity() < 1 {
		return newError("validation.no_items", nil)
	}

	if blank(o.Name) || blank(o.Phone) || blank(o.Address) {
		return newError("validation.customer_incomplete", nil)
	}

	if category == model.CategoryPerfumer {
		if fav == nil || blank(fav.Name) || blank(fav.Type) || blank(fav.Personality) ||
			blank(fav.Characteristics) || blank(fav.DesiredVibe) {
			return newError("validation.favorite_incomplete", nil)
		}
	}

	// Only the 10ml tier has a bottle color choice.
	if err := checkGroup(o.Small, true); err != nil {
		return err
	}
	return checkGroup(o.Large, false)
}

func checkGroup(g model.LineItemGroup, needColor bool) error {
	for i := 0; i < g.Quantity; i++ {
		data := map[string]interface{}{"Size": string(g.Size), "Position": i + 1}

		if g.Items[i].Scent == nil {
			return newError("validation.scent_missing", data)
		}
		if needColor && blank(g.Items[i].Color) {
			return newError("validation.color_missing", data)
		}
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
