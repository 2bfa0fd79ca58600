package models

import "time"

type Restaurant struct {
	ID             int       `json:"id"`
	Slug           string    `json:"slug"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone,omitempty"`
	WhatsAppNumber string    `json:"whatsapp_number,omitempty"`
	LogoURL        string    `json:"logo_url,omitempty"`
	DeliveryFee    float64   `json:"delivery_fee"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
