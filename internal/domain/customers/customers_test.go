package customers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groomer-portal/internal/domain/pets"
	"groomer-portal/internal/domain/servicehistory"
	"groomer-portal/internal/ports/nav"
	"groomer-portal/internal/ports/notify"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

type stubProfiles struct {
	items []Profile
	err   error
}

func (s stubProfiles) ListProfiles(context.Context) ([]Profile, error) { return s.items, s.err }

func (s stubProfiles) GetProfile(_ context.Context, id string) (Profile, error) {
	if s.err != nil {
		return Profile{}, s.err
	}
	for _, p := range s.items {
		if p.ID == id {
			return p, nil
		}
	}
	return Profile{}, ErrNotFound
}

type stubPets struct {
	mu       sync.Mutex
	byOwner  map[string][]pets.Pet
	failFor  map[string]bool
	delay    map[string]time.Duration
	inFlight atomic.Int32
	maxSeen  atomic.Int32
	calls    []string
}

func (s *stubPets) ListByOwner(_ context.Context, owner string) ([]pets.Pet, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		m := s.maxSeen.Load()
		if n <= m || s.maxSeen.CompareAndSwap(m, n) {
			break
		}
	}

	s.mu.Lock()
	s.calls = append(s.calls, owner)
	d := s.delay[owner]
	s.mu.Unlock()
	if d > 0 {
		time.Sleep(d)
	}

	if s.failFor[owner] {
		return nil, errors.New("pets down")
	}
	return s.byOwner[owner], nil
}

type stubHistory struct {
	items  []servicehistory.Entry
	err    error
	during func()
	calls  int
}

func (s *stubHistory) ListByCustomer(_ context.Context, _ string) ([]servicehistory.Entry, error) {
	s.calls++
	if s.during != nil {
		s.during()
	}
	return s.items, s.err
}

type fakeRoles struct {
	admins map[string]bool
	err    error
}

func (f fakeRoles) IsAdmin(_ context.Context, userID string) (bool, error) {
	return f.admins[userID], f.err
}

func sampleProfiles() []Profile {
	return []Profile{
		{ID: "p1", UserID: "u1", FullName: "John Doe", Phone: strPtr("555-1234"), LoyaltyCardID: strPtr("LC-1001")},
		{ID: "p2", UserID: "u2", FullName: "Maria Lopez", Phone: strPtr("444-0000"), LoyaltyCardID: strPtr("lc-2002"), LoyaltyPoints: intPtr(40)},
		{ID: "p3", UserID: "u3", FullName: "Sam Carter"},
	}
}

func newTestScreen(t *testing.T, svc *Service, r fakeRoles) (*Screen, *nav.Recorder, *notify.Collector) {
	t.Helper()
	rec := &nav.Recorder{}
	col := &notify.Collector{}
	return NewScreen(ScreenDeps{Service: svc, Roles: r, Navigator: rec, Notifier: col}), rec, col
}

func TestLoadCustomers_PreservesProfileOrderUnderFanout(t *testing.T) {
	petsStub := &stubPets{
		byOwner: map[string][]pets.Pet{
			"u1": {{ID: "a", Name: "Rex", Species: pets.SpeciesDog}},
			"u2": {{ID: "b", Name: "Kiwi", Species: pets.SpeciesBird}},
		},
		// el primero termina último
		delay: map[string]time.Duration{"u1": 30 * time.Millisecond},
	}
	svc := NewService(stubProfiles{items: sampleProfiles()}, petsStub, &stubHistory{}, Options{FanoutLimit: 2})

	items, err := svc.LoadCustomers(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"p1", "p2", "p3"}, []string{items[0].ID, items[1].ID, items[2].ID})
	assert.Equal(t, "Rex", items[0].Pets[0].Name)
	assert.Equal(t, "Kiwi", items[1].Pets[0].Name)

	assert.NotNil(t, items[2].Pets, "zero pets is an empty list")
	assert.Empty(t, items[2].Pets)
	assert.LessOrEqual(t, petsStub.maxSeen.Load(), int32(2))
}

func TestLoadCustomers_PetFailureYieldsEmptyList(t *testing.T) {
	petsStub := &stubPets{
		byOwner: map[string][]pets.Pet{"u2": {{ID: "b", Name: "Kiwi"}}},
		failFor: map[string]bool{"u1": true},
	}
	svc := NewService(stubProfiles{items: sampleProfiles()}, petsStub, &stubHistory{}, Options{})

	items, err := svc.LoadCustomers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items[0].Pets)
	assert.Len(t, items[1].Pets, 1)
}

func TestLoadCustomers_NoCacheAcrossLoads(t *testing.T) {
	petsStub := &stubPets{}
	svc := NewService(stubProfiles{items: sampleProfiles()}, petsStub, &stubHistory{}, Options{})

	_, _ = svc.LoadCustomers(context.Background())
	_, _ = svc.LoadCustomers(context.Background())
	assert.Len(t, petsStub.calls, 6)
}

func TestFilter_SearchRules(t *testing.T) {
	items := []CustomerWithPets{}
	for _, p := range sampleProfiles() {
		items = append(items, CustomerWithPets{Profile: p})
	}

	ids := func(cs []CustomerWithPets) []string {
		out := []string{}
		for _, c := range cs {
			out = append(out, c.ID)
		}
		return out
	}

	assert.Equal(t, []string{"p1", "p2", "p3"}, ids(Filter(items, "")))
	assert.Equal(t, []string{"p1"}, ids(Filter(items, "555")))
	assert.Equal(t, []string{"p1"}, ids(Filter(items, "JOHN")))
	assert.Equal(t, []string{"p2"}, ids(Filter(items, "LC-2002")), "loyalty card is case-insensitive")
	assert.Empty(t, ids(Filter(items, "zzz")))

	withLetters := CustomerWithPets{Profile: Profile{ID: "x", FullName: "Ann", Phone: strPtr("ext-AB")}}
	assert.True(t, Matches(withLetters.Profile, "AB"))
	assert.False(t, Matches(withLetters.Profile, "ab"), "phone is case-sensitive")

	// sin teléfono ni tarjeta: solo matchea por nombre
	assert.False(t, Matches(Profile{FullName: "Sam"}, "1"))
}

func TestScreen_GateNavigates(t *testing.T) {
	svc := NewService(stubProfiles{items: sampleProfiles()}, &stubPets{}, &stubHistory{}, Options{})

	s, rec, _ := newTestScreen(t, svc, fakeRoles{})
	assert.False(t, s.Mount(context.Background(), Viewer{}))
	target, _ := rec.Target()
	assert.Equal(t, nav.PathLogin, target)

	s, rec, _ = newTestScreen(t, svc, fakeRoles{admins: map[string]bool{}})
	assert.False(t, s.Mount(context.Background(), Viewer{UserID: "u9"}))
	target, _ = rec.Target()
	assert.Equal(t, nav.PathDashboard, target)
	assert.Empty(t, s.Customers, "non-admin never triggers the load")

	s, rec, _ = newTestScreen(t, svc, fakeRoles{err: errors.New("roles down")})
	assert.False(t, s.Mount(context.Background(), Viewer{UserID: "admin"}))
	target, _ = rec.Target()
	assert.Equal(t, nav.PathDashboard, target, "resolver failure denies")

	s, rec, _ = newTestScreen(t, svc, fakeRoles{admins: map[string]bool{"admin": true}})
	assert.True(t, s.Mount(context.Background(), Viewer{UserID: "admin"}))
	_, navigated := rec.Target()
	assert.False(t, navigated)
	assert.Len(t, s.Customers, 3)
	assert.False(t, s.IsLoading)
}

func TestScreen_LoadFailureNotifies(t *testing.T) {
	svc := NewService(stubProfiles{err: errors.New("db down")}, &stubPets{}, &stubHistory{}, Options{})
	s, _, col := newTestScreen(t, svc, fakeRoles{admins: map[string]bool{"admin": true}})

	assert.True(t, s.Mount(context.Background(), Viewer{UserID: "admin"}))
	last, ok := col.Last()
	require.True(t, ok)
	assert.Equal(t, notify.Notice{Kind: notify.KindError, Message: MsgLoadFailed}, last)
	assert.NotNil(t, s.Customers)
	assert.Empty(t, s.Customers)
}

func TestScreen_OpenDetailBeforeHistoryLoads(t *testing.T) {
	hist := &stubHistory{items: []servicehistory.Entry{{ID: "h1", ServiceName: "Bath", AmountPaid: 20}}}
	svc := NewService(stubProfiles{items: sampleProfiles()}, &stubPets{}, hist, Options{})
	s, _, _ := newTestScreen(t, svc, fakeRoles{admins: map[string]bool{"admin": true}})
	require.True(t, s.Mount(context.Background(), Viewer{UserID: "admin"}))

	hist.during = func() {
		assert.True(t, s.IsDetailOpen)
		assert.True(t, s.IsLoadingHistory)
		require.NotNil(t, s.SelectedCustomer)
		assert.Equal(t, "p2", s.SelectedCustomer.ID)
	}
	require.NoError(t, s.OpenDetailByID(context.Background(), "p2"))
	assert.False(t, s.IsLoadingHistory)
	require.Len(t, s.ServiceHistory, 1)
	assert.Equal(t, "+0 pts", s.ServiceHistory[0].PointsLabel())

	s.CloseDetail()
	assert.False(t, s.IsDetailOpen)
	assert.Nil(t, s.SelectedCustomer)

	assert.ErrorIs(t, s.OpenDetailByID(context.Background(), "missing"), ErrNotFound)
}

func TestScreen_HistoryFailureIsEmpty(t *testing.T) {
	hist := &stubHistory{err: errors.New("timeout")}
	svc := NewService(stubProfiles{items: sampleProfiles()}, &stubPets{}, hist, Options{})
	s, _, col := newTestScreen(t, svc, fakeRoles{admins: map[string]bool{"admin": true}})
	require.True(t, s.Mount(context.Background(), Viewer{UserID: "admin"}))

	require.NoError(t, s.OpenDetailByID(context.Background(), "p1"))
	assert.True(t, s.IsDetailOpen)
	assert.NotNil(t, s.ServiceHistory)
	assert.Empty(t, s.ServiceHistory)
	assert.Empty(t, col.Notices(), "no distinct error state for history")
}

func TestView_Fallbacks(t *testing.T) {
	// P1 sin loyalty_points => "0 pts"
	p := Profile{FullName: "P1"}
	assert.Equal(t, "0 pts", p.PointsLabel())
	assert.Equal(t, Missing, p.PhoneLabel())
	assert.Equal(t, Missing, p.AddressLabel())
	assert.Equal(t, Missing, p.LoyaltyCardLabel())

	p.LoyaltyPoints = intPtr(120)
	assert.Equal(t, "120 pts", p.PointsLabel())

	e := servicehistory.Entry{AmountPaid: 65.5, ServiceDate: time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "$65.50", e.AmountLabel())
	assert.Equal(t, "Feb 20, 2026", e.DateLabel())
}

func TestGet_FetchesOnlyThatCustomersPets(t *testing.T) {
	petsStub := &stubPets{
		byOwner: map[string][]pets.Pet{"u2": {{ID: "b", Name: "Kiwi", Species: pets.SpeciesBird}}},
	}
	svc := NewService(stubProfiles{items: sampleProfiles()}, petsStub, &stubHistory{}, Options{})

	c, err := svc.Get(context.Background(), " p2 ")
	require.NoError(t, err)
	assert.Equal(t, "Maria Lopez", c.FullName)
	require.Len(t, c.Pets, 1)
	assert.Equal(t, "Kiwi", c.Pets[0].Name)
	assert.Equal(t, []string{"u2"}, petsStub.calls)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Get(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, petsStub.calls, 1)
}

func TestGet_PetsFailureYieldsEmptyList(t *testing.T) {
	petsStub := &stubPets{failFor: map[string]bool{"u1": true}}
	svc := NewService(stubProfiles{items: sampleProfiles()}, petsStub, &stubHistory{}, Options{})

	c, err := svc.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.NotNil(t, c.Pets)
	assert.Empty(t, c.Pets)
}

func TestGet_ProfileErrorPropagates(t *testing.T) {
	boom := errors.New("db down")
	svc := NewService(stubProfiles{err: boom}, &stubPets{}, &stubHistory{}, Options{})

	_, err := svc.Get(context.Background(), "p1")
	assert.ErrorIs(t, err, boom)
}
