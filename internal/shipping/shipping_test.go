package shipping

import (
	"testing"

	"github.com/fekuna/perfume-order-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	o := model.NewOrder()
	o.Name = "Kim"
	o.Phone = "010-1111-2222"
	o.SocialHandle = "@kim"
	o.Address = "12 Sejong-daero, Seoul"
	o.DetailAddress = "Apt 301"
	o.Note = "leave at door"
	o.Small = model.LineItemGroup{Size: model.SizeSmall, Quantity: 2, Items: []model.LineItem{
		{ID: "s1", Scent: &model.Scent{Name: "Rose"}, Label: "For Mom"},
		{ID: "s2", Scent: &model.Scent{Name: "Yuzu"}},
	}}
	o.Large = model.LineItemGroup{Size: model.SizeLarge, Quantity: 1, Items: []model.LineItem{
		{ID: "l1"},
	}}

	records := Derive(o)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"For Mom", "Yuzu 10ml", "perfume 50ml"},
		[]string{records[0].ContentName, records[1].ContentName, records[2].ContentName})

	for _, r := range records {
		assert.Equal(t, "12 Sejong-daero, Seoul Apt 301", r.FullAddress)
		assert.Equal(t, "12 Sejong-daero, Seoul", r.Address)
		assert.Equal(t, "Kim", r.Name)
		assert.Equal(t, "010-1111-2222", r.Phone)
		assert.Equal(t, "@kim", r.OtherContact)
		assert.Equal(t, "leave at door", r.Message)
		assert.Equal(t, 1, r.ContentCount)
	}
}

func TestDeriveEmptyOrder(t *testing.T) {
	assert.Empty(t, Derive(model.NewOrder()))
}

func TestDeriveWithoutDetailAddress(t *testing.T) {
	o := model.NewOrder()
	o.Address = "Busan"
	o.Large = model.LineItemGroup{Size: model.SizeLarge, Quantity: 1, Items: []model.LineItem{{ID: "x"}}}

	records := Derive(o)
	require.Len(t, records, 1)
	assert.Equal(t, "Busan", records[0].FullAddress)
}
