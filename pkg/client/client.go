// Package client is a Go client for the campus marketplace API. It fetches
// the product list once and derives every displayed view locally from that
// cached snapshot; it never re-queries the server for interactive filter
// changes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/campus-market/listing-service/internal/product/domain"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type productDTO struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Seller      string  `json:"seller"`
	Contact     string  `json:"contact"`
	Photo       string  `json:"photo,omitempty"`
}

type messageDTO struct {
	Message string      `json:"message"`
	Product *productDTO `json:"product,omitempty"`
}

func (d *productDTO) toDomain() *domain.Product {
	return &domain.Product{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		Seller:      d.Seller,
		Contact:     d.Contact,
		Photo:       d.Photo,
	}
}

// CreateProductInput carries the five required creation fields.
type CreateProductInput struct {
	Title       string
	Description string
	Price       float64
	Seller      string
	Contact     string
}

// FetchProducts performs the single full list fetch.
func (c *Client) FetchProducts(ctx context.Context) ([]*domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/products", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, serverError(resp)
	}

	var dtos []*productDTO
	if err := json.NewDecoder(resp.Body).Decode(&dtos); err != nil {
		return nil, fmt.Errorf("failed to decode product list: %w", err)
	}
	products := make([]*domain.Product, 0, len(dtos))
	for _, d := range dtos {
		products = append(products, d.toDomain())
	}
	return products, nil
}

// CreateProduct submits a multipart creation request with an optional photo.
// A nil photo reader means no file is attached.
func (c *Client) CreateProduct(ctx context.Context, input CreateProductInput, photo io.Reader, photoName string) (*domain.Product, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fields := map[string]string{
		"title":       input.Title,
		"description": input.Description,
		"price":       strconv.FormatFloat(input.Price, 'f', -1, 64),
		"seller":      input.Seller,
		"contact":     input.Contact,
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return nil, err
		}
	}
	if photo != nil {
		part, err := mw.CreateFormFile("photo", photoName)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, photo); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/products", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, serverError(resp)
	}

	var out messageDTO
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode create response: %w", err)
	}
	if out.Product == nil {
		return nil, fmt.Errorf("create response missing product")
	}
	return out.Product.toDomain(), nil
}

// DeleteProduct removes a listing through the admin gate and returns the
// removed record's prior state.
func (c *Client) DeleteProduct(ctx context.Context, id, password string) (*domain.Product, error) {
	u := fmt.Sprintf("%s/api/products/%s?password=%s", c.baseURL, url.PathEscape(id), url.QueryEscape(password))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, serverError(resp)
	}

	var out messageDTO
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode delete response: %w", err)
	}
	if out.Product == nil {
		return nil, fmt.Errorf("delete response missing product")
	}
	return out.Product.toDomain(), nil
}

// serverError surfaces the server's message text directly.
func serverError(resp *http.Response) error {
	var out messageDTO
	if err := json.NewDecoder(resp.Body).Decode(&out); err == nil && out.Message != "" {
		return fmt.Errorf("%s", out.Message)
	}
	return fmt.Errorf("request failed with status %d", resp.StatusCode)
}
