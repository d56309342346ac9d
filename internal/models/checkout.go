package models

import "time"

// Shipping and payment method values accepted by the checkout flow.
const (
	ShippingDelivery = "Delivery to Home"
	ShippingPickup   = "Pickup at Store"

	PaymentCOD      = "Cash On Delivery"
	PaymentTransfer = "Bank Transfer"
)

// Status is the lifecycle state of a checkout or custom order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var validNext = map[Status]map[Status]bool{
	StatusPending:    {StatusProcessing: true, StatusCancelled: true},
	StatusProcessing: {StatusCompleted: true, StatusCancelled: true},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// ValidStatus reports whether s is one of the known lifecycle states.
func ValidStatus(s Status) bool {
	_, ok := validNext[s]
	return ok
}

// CanTransition reports whether an order may move from one status to another.
// Orders only move forward; completed and cancelled are terminal.
func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

// CheckoutItem is one line of a persisted order.
type CheckoutItem struct {
	ID       uint    `json:"id"`
	Quantity int     `json:"quantity"`
	Ukuran   string  `json:"ukuran"`
	Harga    float64 `json:"harga"` // price at the time of order
	Produk   Product `json:"produk"`
}

// Checkout is a persisted order as served by the backend.
type Checkout struct {
	ID              uint           `json:"id"`
	OrderCode       string         `json:"order_code"`
	ReceiverName    string         `json:"receiver_name"`
	Phone           string         `json:"phone"`
	Address         string         `json:"address"`
	DeliveryDate    string         `json:"delivery_date"`
	DeliveryTime    string         `json:"delivery_time"`
	ShippingMethod  string         `json:"shipping_method"`
	ShippingCost    float64        `json:"shipping_cost"`
	PaymentMethod   string         `json:"payment_method"`
	PayerName       string         `json:"payer_name"`
	ProofOfTransfer string         `json:"proof_of_transfer,omitempty"`
	TotalAmount     float64        `json:"total_amount"`
	Status          Status         `json:"status"`
	User            *User          `json:"user,omitempty"`
	Items           []CheckoutItem `json:"items,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}
