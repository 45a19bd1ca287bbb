package shipping

import "github.com/fekuna/perfume-order-service/internal/model"

// fallbackScentName labels items whose scent was never picked.
const fallbackScentName = "perfume"

// Derive projects one ShippingRecord per line item, 10ml items first.
func Derive(o model.Order) []model.ShippingRecord {
	records := make([]model.ShippingRecord, 0, o.TotalQuantity())
	for _, g := range []model.LineItemGroup{o.Small, o.Large} {
		for i := 0; i < g.Quantity; i++ {
			var item model.LineItem
			if i < len(g.Items) {
				item = g.Items[i]
			}
			records = append(records, model.ShippingRecord{
				FullAddress:  o.FullAddress(),
				Address:      o.Address,
				Name:         o.Name,
				Phone:        o.Phone,
				OtherContact: o.SocialHandle,
				Message:      o.Note,
				ContentName:  ContentName(item, g.Size),
				ContentCount: 1,
			})
		}
	}
	return records
}

// ContentName is the custom label, or "<scent name> <size>" when none was set.
func ContentName(item model.LineItem, size model.Size) string {
	if item.Label != "" {
		return item.Label
	}
	name := fallbackScentName
	if item.Scent != nil && item.Scent.Name != "" {
		name = item.Scent.Name
	}
	return name + " " + string(size)
}
