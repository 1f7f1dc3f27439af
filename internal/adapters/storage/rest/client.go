package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"groomer-portal/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("rest client not configured")
	ErrUnauthorized  = errors.New("rest unauthorized")
	ErrUpstream      = errors.New("rest upstream error")
)

// Config del cliente de datos del BaaS (API REST estilo PostgREST).
// BaseURL es la raíz del proyecto (sin /rest/v1).
type Config struct {
	BaseURL string
	APIKey  string

	Timeout time.Duration

	// Transport opcional (tests).
	Transport http.RoundTripper
}

type Client struct {
	http *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	key := strings.TrimSpace(cfg.APIKey)
	if base == "" || key == "" {
		return nil, ErrNotConfigured
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("rest: invalid base url: %w", err)
	}

	hc := httpclient.NewWithTransport(cfg.Timeout, cfg.Transport)
	hc.BaseURL = base + "/rest/v1"
	hc.Headers["apikey"] = key
	hc.Headers["Authorization"] = "Bearer " + key

	return &Client{http: hc}, nil
}

type Filter struct {
	Column string
	Op     string // eq, neq, ilike, ...
	Value  string
}

func Eq(column, value string) Filter { return Filter{Column: column, Op: "eq", Value: value} }

type Order struct {
	Column string
	Desc   bool
}

// Query es la consulta genérica: tabla, proyección, filtros y orden.
type Query struct {
	Table   string
	Select  []string
	Filters []Filter
	Order   []Order
}

func (q Query) values() url.Values {
	v := url.Values{}
	if len(q.Select) > 0 {
		v.Set("select", strings.Join(q.Select, ","))
	}
	for _, f := range q.Filters {
		v.Add(f.Column, f.Op+"."+f.Value)
	}
	if len(q.Order) > 0 {
		parts := make([]string, 0, len(q.Order))
		for _, o := range q.Order {
			dir := "asc"
			if o.Desc {
				dir = "desc"
			}
			parts = append(parts, o.Column+"."+dir)
		}
		v.Set("order", strings.Join(parts, ","))
	}
	return v
}

// Select ejecuta q y decodifica las filas en out (puntero a slice).
func (c *Client) Select(ctx context.Context, q Query, out any) error {
	if c == nil || c.http == nil {
		return ErrNotConfigured
	}
	if strings.TrimSpace(q.Table) == "" {
		return errors.New("rest: table required")
	}

	err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   "/" + q.Table,
		Query:  q.values(),
		Out:    out,
	})
	if err == nil {
		return nil
	}

	switch httpclient.StatusCode(err) {
	case 0:
		return fmt.Errorf("%w: select %s: %v", ErrUpstream, q.Table, err)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: select %s: %v", ErrUnauthorized, q.Table, err)
	default:
		return fmt.Errorf("%w: select %s: %v", ErrUpstream, q.Table, err)
	}
}
