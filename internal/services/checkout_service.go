package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"florist/internal/models"
	"florist/internal/upstream"
)

// ErrInvalidForm marks a client-side validation failure: the submission is
// aborted before any backend request is sent.
var ErrInvalidForm = errors.New("invalid checkout form")

// DeliverySlots are the selectable delivery hours.
var DeliverySlots = []string{
	"07:00", "08:00", "09:00", "10:00", "11:00", "12:00",
	"13:00", "14:00", "15:00", "16:00", "17:00", "18:00",
}

// EventPublisher publishes checkout lifecycle events. The RabbitMQ client
// satisfies it; tests use a mock.
type EventPublisher interface {
	PublishCheckoutSubmitted(payload map[string]interface{}) error
}

// CheckoutService turns a set of order lines plus shipping/payment fields
// into order-creation requests against the backend. The backend accepts one
// line per request, so a multi-line checkout fans out sequentially, in line
// order. Unlike the flow it replaces, a failure on any line stops the loop
// and is reported together with the orders already created.
type CheckoutService struct {
	client           *upstream.Client
	events           EventPublisher
	homeShippingCost float64
}

// NewCheckoutService creates a CheckoutService. events may be nil, in which
// case no messages are published.
func NewCheckoutService(client *upstream.Client, events EventPublisher, homeShippingCost float64) *CheckoutService {
	return &CheckoutService{
		client:           client,
		events:           events,
		homeShippingCost: homeShippingCost,
	}
}

// CheckoutLine is one order line ready for submission: a product reference,
// the chosen size and quantity, and the unit price captured at checkout time.
type CheckoutLine struct {
	IDProduk uint
	Quantity int
	Ukuran   string
	Harga    float64
}

// CheckoutForm carries the shipping and payment fields of one submission.
type CheckoutForm struct {
	ReceiverName   string `json:"receiver_name"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	DeliveryDate   string `json:"delivery_date"` // YYYY-MM-DD, today or later
	DeliveryTime   string `json:"delivery_time"` // one of DeliverySlots
	ShippingMethod string `json:"shipping_method"`
	PaymentMethod  string `json:"payment_method"`
	PayerName      string `json:"payer_name"`
}

// ProofOfTransfer is the uploaded payment proof, buffered so it can be
// attached to every line of the fan-out.
type ProofOfTransfer struct {
	Filename string
	Data     []byte
}

// SubmissionResult reports a completed fan-out. FirstOrderID drives the
// payment-view navigation; OrderIDs lists every order created.
type SubmissionResult struct {
	FirstOrderID uint   `json:"first_order_id"`
	OrderIDs     []uint `json:"order_ids"`
}

// ShippingCost resolves the flat shipping cost for a method: pickup is free,
// home delivery costs the configured flat rate.
func (s *CheckoutService) ShippingCost(method string) float64 {
	if method == models.ShippingPickup {
		return 0
	}
	return s.homeShippingCost
}

// Validate runs every client-side check the flow performs before a single
// request is sent. now anchors the delivery-date check.
func (s *CheckoutService) Validate(lines []CheckoutLine, form CheckoutForm, proof *ProofOfTransfer, now time.Time) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: no items to check out", ErrInvalidForm)
	}
	if form.PaymentMethod == "" {
		return fmt.Errorf("%w: select a payment method first", ErrInvalidForm)
	}
	if form.PaymentMethod != models.PaymentCOD && form.PaymentMethod != models.PaymentTransfer {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidForm, form.PaymentMethod)
	}
	if form.ReceiverName == "" || form.Phone == "" || form.Address == "" ||
		form.DeliveryDate == "" || form.DeliveryTime == "" {
		return fmt.Errorf("%w: complete all shipping fields", ErrInvalidForm)
	}
	if form.ShippingMethod != models.ShippingDelivery && form.ShippingMethod != models.ShippingPickup {
		return fmt.Errorf("%w: unknown shipping method %q", ErrInvalidForm, form.ShippingMethod)
	}

	date, err := time.Parse("2006-01-02", form.DeliveryDate)
	if err != nil {
		return fmt.Errorf("%w: delivery date must be YYYY-MM-DD", ErrInvalidForm)
	}
	today, _ := time.Parse("2006-01-02", now.Format("2006-01-02"))
	if date.Before(today) {
		return fmt.Errorf("%w: delivery date must be today or later", ErrInvalidForm)
	}

	slotOK := false
	for _, slot := range DeliverySlots {
		if form.DeliveryTime == slot {
			slotOK = true
			break
		}
	}
	if !slotOK {
		return fmt.Errorf("%w: delivery time must be an hourly slot between 07:00 and 18:00", ErrInvalidForm)
	}

	if form.PaymentMethod == models.PaymentTransfer {
		if form.PayerName == "" {
			return fmt.Errorf("%w: payer name is required for bank transfer", ErrInvalidForm)
		}
		if proof == nil || len(proof.Data) == 0 {
			return fmt.Errorf("%w: proof of transfer upload is required for bank transfer", ErrInvalidForm)
		}
	}
	return nil
}

// Submit validates the form and then issues one order-creation request per
// line, sequentially. On success it returns every created order id. On a
// line failure it stops and returns the ids created so far alongside the
// error, so a partial submission is never silent.
func (s *CheckoutService) Submit(ctx context.Context, token string, lines []CheckoutLine, form CheckoutForm, proof *ProofOfTransfer) (*SubmissionResult, error) {
	if err := s.Validate(lines, form, proof, time.Now()); err != nil {
		return nil, err
	}

	shippingCost := s.ShippingCost(form.ShippingMethod)
	payerName := form.PayerName
	if form.PaymentMethod == models.PaymentCOD || payerName == "" {
		payerName = form.ReceiverName
	}

	result := &SubmissionResult{}
	for i, line := range lines {
		fields := map[string]string{
			"id_produk":       strconv.FormatUint(uint64(line.IDProduk), 10),
			"quantity":        strconv.Itoa(line.Quantity),
			"size":            line.Ukuran,
			"receiver_name":   form.ReceiverName,
			"phone":           form.Phone,
			"address":         form.Address,
			"delivery_date":   form.DeliveryDate,
			"delivery_time":   form.DeliveryTime,
			"shipping_method": form.ShippingMethod,
			"shipping_cost":   strconv.FormatFloat(shippingCost, 'f', -1, 64),
			"payment_method":  form.PaymentMethod,
			"total_amount":    strconv.FormatFloat(line.Harga*float64(line.Quantity)+shippingCost, 'f', -1, 64),
			"payer_name":      payerName,
		}

		var filePart *upstream.FilePart
		if form.PaymentMethod == models.PaymentTransfer && proof != nil {
			filePart = &upstream.FilePart{
				Field:    "proof_of_transfer",
				Filename: proof.Filename,
				Content:  bytes.NewReader(proof.Data),
			}
		}

		created, err := s.client.CreateCheckout(ctx, token, fields, filePart)
		if err != nil {
			if len(result.OrderIDs) > 0 {
				return result, fmt.Errorf("item %d of %d failed after %d order(s) were created: %w",
					i+1, len(lines), len(result.OrderIDs), err)
			}
			return nil, fmt.Errorf("item %d of %d failed: %w", i+1, len(lines), err)
		}

		if result.FirstOrderID == 0 {
			result.FirstOrderID = created.ID
		}
		result.OrderIDs = append(result.OrderIDs, created.ID)
	}

	s.publishSubmitted(result, form)
	return result, nil
}

// LinesFromCart loads the user's cart and converts it to order lines,
// capturing current prices.
func (s *CheckoutService) LinesFromCart(ctx context.Context, token string) ([]CheckoutLine, error) {
	items, err := s.client.CartItems(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	lines := make([]CheckoutLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, CheckoutLine{
			IDProduk: item.Produk.IDProduk,
			Quantity: item.Quantity,
			Ukuran:   item.Ukuran,
			Harga:    item.Produk.Harga,
		})
	}
	return lines, nil
}

// LinesFromRequests resolves explicit "buy now" lines: each product is
// fetched and the size/quantity selector rules are enforced before the line
// is accepted.
func (s *CheckoutService) LinesFromRequests(ctx context.Context, reqs []models.AddCartRequest) ([]CheckoutLine, error) {
	lines := make([]CheckoutLine, 0, len(reqs))
	for _, req := range reqs {
		product, err := s.client.ProductByID(ctx, req.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", req.ProductID, err)
		}

		selector := NewSizeSelector(*product)
		if err := selector.SelectSize(req.Ukuran); err != nil {
			return nil, fmt.Errorf("%w: product %d: %v", ErrInvalidForm, req.ProductID, err)
		}
		selector.SetQuantity(req.Quantity)
		if selector.Quantity() != req.Quantity {
			return nil, fmt.Errorf("%w: product %d: quantity %d is outside [1, %d]",
				ErrInvalidForm, req.ProductID, req.Quantity, product.MaxQuantity())
		}

		lines = append(lines, CheckoutLine{
			IDProduk: product.IDProduk,
			Quantity: selector.Quantity(),
			Ukuran:   selector.Size(),
			Harga:    product.Harga,
		})
	}
	return lines, nil
}

func (s *CheckoutService) publishSubmitted(result *SubmissionResult, form CheckoutForm) {
	if s.events == nil {
		log.Println("Event publisher is not initialized. Skipping message publication.")
		return
	}
	payload := map[string]interface{}{
		"first_order_id": result.FirstOrderID,
		"order_ids":      result.OrderIDs,
		"receiver_name":  form.ReceiverName,
		"payment_method": form.PaymentMethod,
	}
	if err := s.events.PublishCheckoutSubmitted(payload); err != nil {
		log.Printf("Warning: Failed to publish checkout submitted event for order %d: %v", result.FirstOrderID, err)
	} else {
		log.Printf("Successfully published checkout submitted event for order %d", result.FirstOrderID)
	}
}
