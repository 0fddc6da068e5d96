package domain

import "github.com/shopspring/decimal"

const (
	EventSaleCreated        = "SaleCreated"
	EventSaleReplaced       = "SaleReplaced"
	EventSaleStatusChanged  = "SaleStatusChanged"
	EventSaleDeleted        = "SaleDeleted"
	EventOrderCreated       = "OrderCreated"
	EventOrderReplaced      = "OrderReplaced"
	EventOrderStatusChanged = "OrderStatusChanged"
	EventOrderDeleted       = "OrderDeleted"
)

// Created events carry no aggregate id field: ids are assigned by the store
// and recorded on the outbox row itself.
type SaleCreated struct {
	Customer    string          `json:"customer"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Items       int             `json:"items"`
}

type OrderCreated struct {
	Customer     string          `json:"customer"`
	Amount       decimal.Decimal `json:"amount"`
	DeliveryDate string          `json:"deliveryDate"`
	Items        int             `json:"items"`
}

type SaleReplaced struct {
	AggregateID int64           `json:"aggregateId"`
	Customer    string          `json:"customer"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Items       int             `json:"items"`
}

type OrderReplaced struct {
	AggregateID  int64           `json:"aggregateId"`
	Customer     string          `json:"customer"`
	Amount       decimal.Decimal `json:"amount"`
	DeliveryDate string          `json:"deliveryDate"`
	Items        int             `json:"items"`
}

type StatusChanged struct {
	AggregateID int64  `json:"aggregateId"`
	From        Status `json:"from"`
	To          Status `json:"to"`
}

// Deleted is shared by sale and order deletions; the event type on the
// outbox row tells them apart.
type Deleted struct {
	AggregateID int64 `json:"aggregateId"`
}
