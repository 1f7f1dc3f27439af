package servicehistory

import (
	"context"
	"errors"
	"sort"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListByCustomer(ctx context.Context, customerID string) ([]Entry, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, ErrInvalidInput
	}

	items, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		return []Entry{}, nil
	}

	// El repo ya ordena; reforzamos el contrato para adapters que no lo hagan (REST sin order).
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ServiceDate.After(items[j].ServiceDate)
	})
	return items, nil
}
