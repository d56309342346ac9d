package models

import "time"

// CustomOrder is a bespoke arrangement request: free-form flower attributes
// instead of a catalogue product reference. It shares the checkout status
// lifecycle.
type CustomOrder struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"userId"`
	Username      string    `json:"username"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	DeliveryDate  string    `json:"deliveryDate"`
	FlowerType    string    `json:"flowerType"`
	FlowerColor   string    `json:"flowerColor"`
	Size          string    `json:"size"`
	Arrangement   string    `json:"arrangement"`
	Theme         string    `json:"theme,omitempty"`
	MessageCard   string    `json:"messageCard,omitempty"`
	PaymentMethod string    `json:"paymentMethod"`
	Notes         string    `json:"notes,omitempty"`
	ImagePath     string    `json:"imagePath,omitempty"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CustomOrderRequest carries the form fields of a new custom order. The
// optional reference image travels alongside as a multipart file part.
type CustomOrderRequest struct {
	Username      string `json:"username" validate:"required"`
	Phone         string `json:"phone" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Address       string `json:"address" validate:"required"`
	DeliveryDate  string `json:"deliveryDate" validate:"required"`
	FlowerType    string `json:"flowerType" validate:"required"`
	FlowerColor   string `json:"flowerColor" validate:"required"`
	Size          string `json:"size" validate:"required"`
	Arrangement   string `json:"arrangement" validate:"required"`
	Theme         string `json:"theme"`
	MessageCard   string `json:"messageCard"`
	PaymentMethod string `json:"paymentMethod" validate:"required"`
	Notes         string `json:"notes"`
}
