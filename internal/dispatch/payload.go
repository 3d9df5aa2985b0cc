// Package dispatch holds the order dispatch service: the payloads exchanged across the
// dispatch boundary, the Temporal workflow that accepts a submitted order, and the
// activities that persist it and announce it.
package dispatch

import (
	"time"

	"campusdelivery/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// LineItemPayload is one line item as it crosses the dispatch boundary.
type LineItemPayload struct {
	ItemID   int64           `json:"item_id"`
	ItemName string          `json:"item_name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// OrderPayload is an order as it crosses the dispatch boundary.
// OrderID is 0 on the way in and set by the dispatch service on the way out.
type OrderPayload struct {
	OrderID           int64             `json:"order_id"`
	UserID            string            `json:"user_id"`
	VendorID          int64             `json:"vendor_id"`
	Items             []LineItemPayload `json:"items"`
	Status            string            `json:"status"`
	CreatedAt         time.Time         `json:"created_at"`
	DropoffLocationID int64             `json:"dropoff_loc_id"`
	RobotID           *string           `json:"robot_id,omitempty"`
}

// SubmitOrderRequest is the input of SubmitOrderWorkflow.
type SubmitOrderRequest struct {
	Order OrderPayload `json:"order"`
}

// SubmitOrderResponse is the result of SubmitOrderWorkflow.
type SubmitOrderResponse struct {
	Order         OrderPayload `json:"order"`
	ReturnMessage string       `json:"return_msg"`
}

// PayloadFromOrder copies an order into its wire form. Items keep their order.
func PayloadFromOrder(o *order.Order) OrderPayload {
	items := make([]LineItemPayload, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, LineItemPayload{
			ItemID:   item.ItemID(),
			ItemName: item.Name(),
			Quantity: item.Quantity(),
			Price:    item.Price(),
		})
	}

	return OrderPayload{
		OrderID:           o.ID(),
		UserID:            o.UserID(),
		VendorID:          o.VendorID(),
		Items:             items,
		Status:            o.Status().String(),
		CreatedAt:         o.CreatedAt(),
		DropoffLocationID: o.DropoffLocationID(),
		RobotID:           o.RobotID(),
	}
}

// ToOrder rebuilds the order carried by the payload.
func (p OrderPayload) ToOrder() (*order.Order, error) {
	status, err := order.ParseStatus(p.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(p.Items))
	for _, payload := range p.Items {
		item, itemErr := order.NewLineItem(payload.ItemID, payload.ItemName, payload.Quantity, payload.Price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		p.OrderID,
		p.UserID,
		p.VendorID,
		p.DropoffLocationID,
		items,
		status,
		p.CreatedAt,
		p.RobotID,
	)
}
