package validation

import (
	"testing"

	"github.com/fekuna/perfume-order-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rose = &model.Scent{ID: "RS-2807221", Name: "Rose", Category: model.ScentFloral}

func validOrder() model.Order {
	o := model.NewOrder()
	o.Name = "Kim"
	o.Phone = "010-1234-5678"
	o.Address = "Seoul"
	o.Small = model.LineItemGroup{Size: model.SizeSmall, Quantity: 1, Items: []model.LineItem{
		{ID: "a", Scent: rose, Color: "pink", Intensity: model.IntensityLight},
	}}
	o.Large = model.LineItemGroup{Size: model.SizeLarge, Quantity: 1, Items: []model.LineItem{
		{ID: "b", Scent: rose, Intensity: model.IntensityStrong},
	}}
	return o
}

func validFavorite() *model.FavoriteProfile {
	return &model.FavoriteProfile{
		Name:            "Luna",
		Type:            "idol",
		Personality:     "calm",
		Characteristics: "silver hair",
		DesiredVibe:     "moonlit",
	}
}

func messageID(t *testing.T, err error) string {
	t.Helper()
	var vErr *Error
	require.ErrorAs(t, err, &vErr)
	return vErr.MessageID
}

func TestValidateOrder(t *testing.T) {
	assert.NoError(t, ValidateOrder(model.CategoryAI, validOrder(), nil))
	assert.NoError(t, ValidateOrder(model.CategoryPerfumer, validOrder(), validFavorite()))

	t.Run("no items", func(t *testing.T) {
		o := validOrder()
		o.Small = model.LineItemGroup{Size: model.SizeSmall}
		o.Large = model.LineItemGroup{Size: model.SizeLarge}
		assert.Equal(t, "validation.no_items", messageID(t, ValidateOrder(model.CategoryAI, o, nil)))
	})

	t.Run("missing category", func(t *testing.T) {
		assert.Equal(t, "order.missing_category", messageID(t, ValidateOrder("", validOrder(), nil)))
	})

	t.Run("unknown category", func(t *testing.T) {
		err := ValidateOrder("wholesale", validOrder(), nil)
		assert.Equal(t, "order.unknown_category", messageID(t, err))
		assert.Contains(t, err.Error(), "wholesale")
	})

	t.Run("missing contact", func(t *testing.T) {
		o := validOrder()
		o.Phone = "  "
		assert.Equal(t, "validation.customer_incomplete", messageID(t, ValidateOrder(model.CategoryAI, o, nil)))
	})

	t.Run("perfumer without desired vibe", func(t *testing.T) {
		fav := validFavorite()
		fav.DesiredVibe = ""
		assert.Equal(t, "validation.favorite_incomplete", messageID(t, ValidateOrder(model.CategoryPerfumer, validOrder(), fav)))
	})

	t.Run("perfumer without profile", func(t *testing.T) {
		assert.Equal(t, "validation.favorite_incomplete", messageID(t, ValidateOrder(model.CategoryPerfumer, validOrder(), nil)))
	})

	t.Run("ai ignores profile", func(t *testing.T) {
		assert.NoError(t, ValidateOrder(model.CategoryAI, validOrder(), &model.FavoriteProfile{}))
	})

	t.Run("small item without scent", func(t *testing.T) {
		o := validOrder()
		o.Small.Items[0].Scent = nil
		err := ValidateOrder(model.CategoryAI, o, nil)
		var vErr *Error
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "validation.scent_missing", vErr.MessageID)
		assert.Equal(t, "10ml", vErr.Data["Size"])
		assert.Equal(t, 1, vErr.Data["Position"])
	})

	t.Run("small item without color", func(t *testing.T) {
		o := validOrder()
		o.Small.Items[0].Color = ""
		assert.Equal(t, "validation.color_missing", messageID(t, ValidateOrder(model.CategoryAI, o, nil)))
	})

	t.Run("large item needs no color", func(t *testing.T) {
		o := validOrder()
		o.Large.Items[0].Color = ""
		assert.NoError(t, ValidateOrder(model.CategoryAI, o, nil))
	})

	t.Run("large item without scent", func(t *testing.T) {
		o := validOrder()
		o.Large.Items[0].Scent = nil
		assert.Equal(t, "validation.scent_missing", messageID(t, ValidateOrder(model.CategoryAI, o, nil)))
	})

	t.Run("quantity ahead of items", func(t *testing.T) {
		o := validOrder()
		o.Large.Quantity = 2
		err := ValidateOrder(model.CategoryAI, o, nil)
		var vErr *Error
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "validation.quantity_invalid", vErr.MessageID)
		assert.Equal(t, "50ml", vErr.Data["Size"])
		assert.Equal(t, 2, vErr.Data["Quantity"])
		assert.Equal(t, 1, vErr.Data["Items"])
	})

	t.Run("items beyond quantity", func(t *testing.T) {
		o := validOrder()
		o.Large.Items = append(o.Large.Items, o.Large.Items[0], o.Large.Items[0])
		assert.Equal(t, "validation.quantity_invalid", messageID(t, ValidateOrder(model.CategoryAI, o, nil)))
	})

	t.Run("negative quantity", func(t *testing.T) {
		o := validOrder()
		o.Small.Quantity = -1
		o.Small.Items = nil
		o.Large.Quantity = 2
		o.Large.Items = append(o.Large.Items, o.Large.Items[0])
		assert.Equal(t, "validation.quantity_invalid", messageID(t, ValidateOrder(model.CategoryAI, o, nil)))
	})
}
