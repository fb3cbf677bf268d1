package client

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// User mirrors the backend's user shape in auth responses
type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

// AuthResponse is the login/register response body
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// AdminLoginResponse is the admin login response body
type AdminLoginResponse struct {
	Token string `json:"token"`
}

// Store is a connected marketplace store
type Store struct {
	ID        string    `json:"id"`
	UserID    int       `json:"user_id"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// Product is a listing pulled from a marketplace
type Product struct {
	ID         string    `json:"id"`
	StoreID    string    `json:"store_id"`
	ExternalID string    `json:"external_id"`
	Name       string    `json:"name"`
	Price      int       `json:"price"`
	Quantity   int       `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
}

// Mapping links two equivalent products across marketplaces
type Mapping struct {
	ID         string    `json:"id"`
	UserID     int       `json:"user_id"`
	Product1ID string    `json:"product1_id"`
	Product2ID string    `json:"product2_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Stats holds entity counts for the admin dashboard
type Stats struct {
	Users    int64 `json:"users"`
	Stores   int64 `json:"stores"`
	Products int64 `json:"products"`
	Mappings int64 `json:"mappings"`
}

// Register creates an account and returns the issued session token
func (c *Client) Register(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login authenticates and returns the issued session token
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// AdminLogin authenticates against the admin credential pair
func (c *Client) AdminLogin(ctx context.Context, username, password string) (*AdminLoginResponse, error) {
	var resp AdminLoginResponse
	err := c.do(ctx, http.MethodPost, "/admin/login", map[string]string{
		"username": username,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stores lists the caller's connected stores
func (c *Client) Stores(ctx context.Context) ([]Store, error) {
	var stores []Store
	if err := c.do(ctx, http.MethodGet, "/stores", nil, &stores); err != nil {
		return nil, err
	}
	return stores, nil
}

// AddStore connects a marketplace store by type and API token
func (c *Client) AddStore(ctx context.Context, storeType, apiToken string) (*Store, error) {
	var store Store
	err := c.do(ctx, http.MethodPost, "/stores", map[string]string{
		"type":      storeType,
		"api_token": apiToken,
	}, &store)
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// DeleteStore disconnects a store by ID
func (c *Client) DeleteStore(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/stores/"+id, nil, nil)
}

// Products lists the caller's pulled product listings
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var resp struct {
		Products []Product `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, "/products", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// Mappings lists the caller's product mappings
func (c *Client) Mappings(ctx context.Context) ([]Mapping, error) {
	var resp struct {
		Mappings []Mapping `json:"mappings"`
	}
	if err := c.do(ctx, http.MethodGet, "/mappings", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Mappings, nil
}

// CreateMapping links two equivalent products
func (c *Client) CreateMapping(ctx context.Context, product1ID, product2ID string) (*Mapping, error) {
	var mapping Mapping
	err := c.do(ctx, http.MethodPost, "/mappings", map[string]string{
		"product1_id": product1ID,
		"product2_id": product2ID,
	}, &mapping)
	if err != nil {
		return nil, err
	}
	return &mapping, nil
}

// DeleteMapping removes a mapping by ID
func (c *Client) DeleteMapping(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/mappings/"+id, nil, nil)
}

// AdminStats returns entity counts for the admin dashboard
func (c *Client) AdminStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := c.do(ctx, http.MethodGet, "/admin/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// AdminUsers lists all users
func (c *Client) AdminUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AdminDeleteUser removes a user and everything they own
func (c *Client) AdminDeleteUser(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/users/%d", id), nil, nil)
}

// AdminStores lists all connected stores
func (c *Client) AdminStores(ctx context.Context) ([]Store, error) {
	var stores []Store
	if err := c.do(ctx, http.MethodGet, "/admin/stores", nil, &stores); err != nil {
		return nil, err
	}
	return stores, nil
}

// AdminDeleteStore removes a store by ID
func (c *Client) AdminDeleteStore(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/stores/"+id, nil, nil)
}

// AdminProducts lists all products
func (c *Client) AdminProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/admin/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// AdminDeleteProduct removes a product by ID
func (c *Client) AdminDeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/products/"+id, nil, nil)
}

// AdminMappings lists all mappings
func (c *Client) AdminMappings(ctx context.Context) ([]Mapping, error) {
	var mappings []Mapping
	if err := c.do(ctx, http.MethodGet, "/admin/mappings", nil, &mappings); err != nil {
		return nil, err
	}
	return mappings, nil
}

// AdminDeleteMapping removes a mapping by ID
func (c *Client) AdminDeleteMapping(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/mappings/"+id, nil, nil)
}
