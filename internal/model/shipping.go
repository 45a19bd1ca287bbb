package model

// ShippingRecord is one courier label row, derived per LineItem at submit time.
type ShippingRecord struct {
	FullAddress  string `json:"recipientFullAddress"`
	Address      string `json:"recipientAddress"`
	Name         string `json:"recipientName"`
	Phone        string `json:"recipientPhone"`
	OtherContact string `json:"recipientOtherContact"`
	Message      string `json:"deliveryMessage"`
	ContentName  string `json:"contentName"`
	ContentCount int    `json:"contentQuantity"`
}
