package servicehistory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	items []Entry
}

func (r stubRepo) ListByCustomer(_ context.Context, _ string) ([]Entry, error) {
	return r.items, nil
}

func TestService_ListByCustomer_MostRecentFirst(t *testing.T) {
	d := func(day int) time.Time { return time.Date(2025, 3, day, 10, 0, 0, 0, time.UTC) }
	svc := NewService(stubRepo{items: []Entry{
		{ID: "a", ServiceDate: d(1)},
		{ID: "c", ServiceDate: d(20)},
		{ID: "b", ServiceDate: d(5)},
	}})

	items, err := svc.ListByCustomer(context.Background(), "cust-1")
	require.NoError(t, err)
	ids := []string{items[0].ID, items[1].ID, items[2].ID}
	assert.Equal(t, []string{"c", "b", "a"}, ids)
}

func TestService_ListByCustomer_EmptyAndInvalid(t *testing.T) {
	items, err := NewService(stubRepo{}).ListByCustomer(context.Background(), "cust-1")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	_, err = NewService(stubRepo{}).ListByCustomer(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEntry_PointsFallsBackToZero(t *testing.T) {
	assert.Equal(t, 0, Entry{}.Points())
	n := 15
	assert.Equal(t, 15, Entry{PointsEarned: &n}.Points())
}
