// Package models defines the storefront entities shared by the server and the
// client.
package models

import "time"

// User is the public identity of an authenticated customer.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Customer is a registered account as stored by the server.
type Customer struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// User strips the credentials from a customer record.
func (c Customer) User() User {
	return User{ID: c.ID, Name: c.Name, Email: c.Email}
}

// AuthResponse is returned by successful login and registration.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Category groups images in the catalog.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Image is a catalog entry offered for sale.
type Image struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	// Category is the free-text category column.
	Category string `json:"category"`
	// CategoryID is the categories foreign key; nil when unset.
	CategoryID *int64    `json:"categoryId,omitempty"`
	ImageURL   string    `json:"imageUrl"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
}

// OrderLineInput is one requested line of a checkout.
type OrderLineInput struct {
	ItemID   int64 `json:"itemId"`
	Quantity int   `json:"quantity"`
}

// OrderLine is a persisted order line priced at order time.
type OrderLine struct {
	ImageID   int64   `json:"imageId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// Order is a placed purchase.
type Order struct {
	ID         int64       `json:"id"`
	CustomerID int64       `json:"customerId"`
	Total      float64     `json:"total"`
	Status     string      `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
	Lines      []OrderLine `json:"lines"`
}

// OrderStatusPending is the status of a freshly placed order.
const OrderStatusPending = "pending"

// Envelope is the response wrapper used by the catalog and order endpoints.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}
