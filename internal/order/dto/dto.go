package dto

import (
	"time"

	"github.com/fekuna/perfume-order-service/internal/model"
	"github.com/fekuna/perfume-order-service/internal/pricing"
)

// PlaceOrderRequest is the canonical POST body. Field names follow the order form.
type PlaceOrderRequest struct {
	OrderType          model.Category         `json:"orderType"`
	Name               string                 `json:"name"`
	Phone              string                 `json:"phone"`
	XID                string                 `json:"xId"`
	Address            string                 `json:"address"`
	DetailAddress      string                 `json:"detailAddress"`
	PostalCode         string                 `json:"postalCode"`
	Quantity10ml       int                    `json:"quantity10ml"`
	Perfumes10ml       []model.LineItem       `json:"perfumes10ml"`
	Quantity50ml       int                    `json:"quantity50ml"`
	Perfumes50ml       []model.LineItem       `json:"perfumes50ml"`
	AdditionalRequests string                 `json:"additionalRequests"`
	TotalAmount        int64                  `json:"totalAmount"`
	FavoriteInfo       *model.FavoriteProfile `json:"favoriteInfo,omitempty"`
	ShippingFormat     []model.ShippingRecord `json:"shippingFormat"`
}

func NewPlaceOrderRequest(category model.Category, o model.Order, fav *model.FavoriteProfile, records []model.ShippingRecord, total int64) *PlaceOrderRequest {
	req := &PlaceOrderRequest{
		OrderType:          category,
		Name:               o.Name,
		Phone:              o.Phone,
		XID:                o.SocialHandle,
		Address:            o.Address,
		DetailAddress:      o.DetailAddress,
		PostalCode:         o.PostalCode,
		Quantity10ml:       o.Small.Quantity,
		Perfumes10ml:       o.Small.Items,
		Quantity50ml:       o.Large.Quantity,
		Perfumes50ml:       o.Large.Items,
		AdditionalRequests: o.Note,
		TotalAmount:        total,
		ShippingFormat:     records,
	}
	if req.Perfumes10ml == nil {
		req.Perfumes10ml = []model.LineItem{}
	}
	if req.Perfumes50ml == nil {
		req.Perfumes50ml = []model.LineItem{}
	}
	if req.ShippingFormat == nil {
		req.ShippingFormat = []model.ShippingRecord{}
	}
	if category == model.CategoryPerfumer && fav != nil {
		f := fav.Clone()
		req.FavoriteInfo = &f
	}
	return req
}

// Order rebuilds the domain order from the wire shape.
func (r *PlaceOrderRequest) Order() model.Order {
	return model.Order{
		Name:          r.Name,
		Phone:         r.Phone,
		SocialHandle:  r.XID,
		Address:       r.Address,
		DetailAddress: r.DetailAddress,
		PostalCode:    r.PostalCode,
		Note:          r.AdditionalRequests,
		Small:         model.LineItemGroup{Size: model.SizeSmall, Quantity: r.Quantity10ml, Items: r.Perfumes10ml},
		Large:         model.LineItemGroup{Size: model.SizeLarge, Quantity: r.Quantity50ml, Items: r.Perfumes50ml},
	}
}

// PlaceOrderReply is the only body shape the order endpoint answers POST with.
type PlaceOrderReply struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	OrderNumber string `json:"orderNumber,omitempty"`
	Error       string `json:"error,omitempty"`
}

type HealthReply struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type PlaceOrderResult struct {
	OrderNumber string
	PlacedAt    time.Time
	Quote       pricing.Quote
	// NotifiedRecipients is how many recipients actually received the email.
	NotifiedRecipients int
}

// FailureRecord is one row of the error store.
type FailureRecord struct {
	At      time.Time
	Message string
	Payload string
	Stack   string
}

// OrderNotification carries everything the notification templates render.
type OrderNotification struct {
	OrderNumber   string
	Category      model.Category
	CategoryLabel string
	PlacedAt      time.Time
	Order         model.Order
	Favorite      *model.FavoriteProfile
	Quote         pricing.Quote
}
