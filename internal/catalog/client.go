package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/dmarroquin/shopwindow-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	defaultBaseURL             = "https://fakestoreapi.com"
	errorBodyReadLimit   int64 = 1024
	defaultClientTimeout       = 10 * time.Second
)

// Client wraps the upstream product catalog HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured catalog base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the catalog client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultClientTimeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultClientTimeout}
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}

	return client
}

// wireProduct matches the upstream JSON shape.
type wireProduct struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      *struct {
		Rate  float64 `json:"rate"`
		Count int     `json:"count"`
	} `json:"rating"`
}

func (w wireProduct) toProduct() Product {
	product := Product{
		ID:          w.ID,
		Name:        w.Title,
		Price:       w.Price,
		Description: w.Description,
		Category:    w.Category,
		ImageURL:    w.Image,
	}
	if w.Rating != nil {
		product.Rating = &Rating{Rate: w.Rating.Rate, Count: w.Rating.Count}
	}
	return product
}

// ListProducts fetches the full product listing.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var wire []wireProduct
	if err := c.getJSON(ctx, "products", &wire); err != nil {
		return nil, err
	}
	products := make([]Product, 0, len(wire))
	for _, w := range wire {
		products = append(products, w.toProduct())
	}
	return products, nil
}

// GetProduct fetches a single product by its numeric identifier.
func (c *Client) GetProduct(ctx context.Context, id int) (*Product, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id must be positive")
	}
	var wire *wireProduct
	if err := c.getJSON(ctx, "products/"+strconv.Itoa(id), &wire); err != nil {
		return nil, err
	}
	// The upstream answers unknown ids with an empty 200 body.
	if wire == nil || wire.ID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	product := wire.toProduct()
	return &product, nil
}

// ListCategories fetches all category labels.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.getJSON(ctx, "products/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Ping verifies the upstream is reachable.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.ListCategories(ctx)
	return err
}

func (c *Client) getJSON(ctx context.Context, path string, dest any) error {
	url := c.buildURL(path)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build catalog request")
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute catalog request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return pkgerrors.New(pkgerrors.CodeNotFound, "catalog resource not found")
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "catalog request failed")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read catalog response")
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode catalog response")
	}
	return nil
}

func (c *Client) buildURL(path string) string {
	trimmed := strings.TrimRight(c.baseURL, "/")
	path = strings.TrimLeft(path, "/")
	return fmt.Sprintf("%s/%s", trimmed, path)
}
