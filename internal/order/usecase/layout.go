package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/perfume-order-service/internal/model"
	"github.com/fekuna/perfume-order-service/internal/order/dto"
	"github.com/fekuna/perfume-order-service/internal/pricing"
)

// Header rows. Row builders below must emit cells in exactly this order.
var (
	summaryHeaders = []string{
		"Order Number", "Ordered At", "Name", "Phone", "X ID", "Address", "Detail Address",
		"10ml Quantity", "10ml Perfumes", "50ml Quantity", "50ml Perfumes",
		"Subtotal", "Shipping", "Total", "Additional Requests",
	}

	favoriteHeaders = []string{
		"Favorite Name", "Favorite Type", "Favorite Personality", "Favorite Characteristics",
		"Favorite Mood", "Special Memory", "Desired Vibe", "Favorite Reason",
		"Keywords", "Colors", "Image URLs",
	}

	perfumerHeaders = append(append([]string{}, summaryHeaders...), favoriteHeaders...)

	shippingHeaders = []string{
		"Recipient Full Address", "Recipient Address", "Recipient Name", "Recipient Phone",
		"Recipient Other Contact", "Delivery Message", "Content Name", "Content Quantity",
		"Registered At",
	}

	errorHeaders = []string{"Time", "Error Message", "Request Body", "Stack Trace"}
)

func headersFor(category model.Category) []string {
	if category == model.CategoryPerfumer {
		return perfumerHeaders
	}
	return summaryHeaders
}

func categoryLabel(category model.Category) string {
	switch category {
	case model.CategoryAI:
		return "AI base order"
	case model.CategoryPerfumer:
		return "Perfumer base order"
	}
	return string(category)
}

// describeItems renders "<scent> (<color>, <intensity>) - <label>" per item, joined by "; ".
func describeItems(items []model.LineItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		scent := "unselected"
		if it.Scent != nil && it.Scent.Name != "" {
			scent = it.Scent.Name
		}
		parts = append(parts, fmt.Sprintf("%s (%s, %s) - %s",
			scent,
			orDefault(it.Color, "no color"),
			orDefault(string(it.Intensity), string(model.IntensityLight)),
			orDefault(it.Label, "no label"),
		))
	}
	return strings.Join(parts, "; ")
}

func summaryRow(number string, at time.Time, category model.Category, o model.Order, fav *model.FavoriteProfile, q pricing.Quote) model.Row {
	row := model.Row{
		number,
		at,
		o.Name,
		o.Phone,
		o.SocialHandle,
		o.Address,
		o.DetailAddress,
		o.Small.Quantity,
		describeItems(o.Small.Items),
		o.Large.Quantity,
		describeItems(o.Large.Items),
		q.Subtotal,
		q.Shipping,
		q.Total,
		o.Note,
	}
	if category != model.CategoryPerfumer {
		return row
	}

	f := model.FavoriteProfile{}
	if fav != nil {
		f = *fav
	}
	return append(row,
		f.Name,
		f.Type,
		f.Personality,
		f.Characteristics,
		f.Mood,
		f.SpecialMemory,
		f.DesiredVibe,
		f.FavoriteReason,
		strings.Join(f.Keywords, ", "),
		strings.Join(f.Colors, ", "),
		strings.Join(f.ImageURLs, ", "),
	)
}

func shippingRows(records []model.ShippingRecord, at time.Time) []model.Row {
	rows := make([]model.Row, 0, len(records))
	for _, r := range records {
		count := r.ContentCount
		if count <= 0 {
			count = 1
		}
		rows = append(rows, model.Row{
			r.FullAddress,
			r.Address,
			r.Name,
			r.Phone,
			r.OtherContact,
			r.Message,
			r.ContentName,
			count,
			at,
		})
	}
	return rows
}

func errorRow(f *dto.FailureRecord) model.Row {
	return model.Row{
		f.At,
		orDefault(f.Message, "unknown error"),
		orDefault(f.Payload, "none"),
		orDefault(f.Stack, "no stack"),
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
