package paper

import "time"

type OrderSide string

const (
	SideBuy  OrderSide = "buy"
	SideSell OrderSide = "sell"
)

type OrderType string

const (
	OrderMarket OrderType = "market"
	OrderLimit  OrderType = "limit"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderFilled    OrderStatus = "filled"
	OrderCancelled OrderStatus = "cancelled"
	OrderRejected  OrderStatus = "rejected"
)

// Order records one order submitted to the engine. Only market orders are
// exercised today and they fill synchronously; the limit/pending/cancelled/
// rejected states exist for schema compatibility with future order types.
type Order struct {
	ID          string
	Symbol      string
	Side        OrderSide
	Type        OrderType
	Quantity    float64
	LimitPrice  *float64
	Status      OrderStatus
	FilledPrice *float64
	CreatedAt   time.Time
	FilledAt    *time.Time
}
