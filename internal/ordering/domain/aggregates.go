package domain

import "github.com/shopspring/decimal"

// Sale is a point-of-sale transaction. Date ("2006-01-02") and Time
// ("15:04:05") stay in their validated wire form; nothing computes on them.
// TotalAmount is caller-supplied truth and is not reconciled against the sum
// of line totals.
type Sale struct {
	ID          int64
	Customer    string
	TotalAmount decimal.Decimal
	Date        string
	Time        string
	Status      Status
	Items       []LineItem
}

// NewSale forces the initial status to PENDING regardless of anything the
// caller supplied.
func NewSale(customer string, totalAmount decimal.Decimal, date, saleTime string, items []LineItem) Sale {
	return Sale{
		Customer:    customer,
		TotalAmount: totalAmount,
		Date:        date,
		Time:        saleTime,
		Status:      StatusPending,
		Items:       items,
	}
}

// Order is a commission: a future-dated customer request.
type Order struct {
	ID           int64
	Customer     string
	Description  string
	DeliveryDate string
	Amount       decimal.Decimal
	Status       Status
	Items        []LineItem
}

func NewOrder(customer, description, deliveryDate string, amount decimal.Decimal, items []LineItem) Order {
	return Order{
		Customer:     customer,
		Description:  description,
		DeliveryDate: deliveryDate,
		Amount:       amount,
		Status:       StatusPending,
		Items:        items,
	}
}
