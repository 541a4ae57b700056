package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	bookingRepo "smartpark/database/repository/booking"
	spotRepo "smartpark/database/repository/spot"
	"smartpark/models"
)

// fakeBookingRepo is an in-memory BookingRepository. CreateConfirmed holds a
// mutex across the capacity check and insert, mirroring the per-spot
// serialization of the real store.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
	payments map[string]*models.Payment // keyed by booking ID
	spots    *fakeSpotRepo
}

func newFakeBookingRepo(spots *fakeSpotRepo) *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings: make(map[string]*models.Booking),
		payments: make(map[string]*models.Payment),
		spots:    spots,
	}
}

func (f *fakeBookingRepo) countOverlappingLocked(spotID string, start, end time.Time) int64 {
	var n int64
	for _, b := range f.bookings {
		if b.SpotID == spotID && b.Status == models.BookingStatusConfirmed &&
			Overlaps(b.StartTime, b.EndTime, start, end) {
			n++
		}
	}
	return n
}

func (f *fakeBookingRepo) CountOverlapping(ctx context.Context, spotID string, start, end time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.countOverlappingLocked(spotID, start, end), nil
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) FindByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeBookingRepo) FindByOwner(ctx context.Context, ownerID string) ([]models.Booking, error) {
	owned := make(map[string]bool)
	f.spots.mu.Lock()
	for id, sp := range f.spots.spots {
		if sp.OwnerID == ownerID {
			owned[id] = true
		}
	}
	f.spots.mu.Unlock()

	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if owned[b.SpotID] {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) Save(ctx context.Context, booking *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *booking
	f.bookings[booking.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) FindPaymentByBooking(ctx context.Context, bookingID string) (*models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payments[bookingID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeBookingRepo) CreateConfirmed(ctx context.Context, booking *models.Booking, payment *models.Payment, capacity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.spots.mu.Lock()
	_, known := f.spots.spots[booking.SpotID]
	f.spots.mu.Unlock()
	if !known {
		return bookingRepo.ErrSpotNotFound
	}

	if f.countOverlappingLocked(booking.SpotID, booking.StartTime, booking.EndTime) >= int64(capacity) {
		return bookingRepo.ErrCapacityExceeded
	}

	cp := *booking
	f.bookings[booking.ID] = &cp
	if payment != nil {
		pcp := *payment
		f.payments[booking.ID] = &pcp
	}
	return nil
}

func (f *fakeBookingRepo) CancelWithRefund(ctx context.Context, bookingID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[bookingID]
	if !ok || b.Status != models.BookingStatusConfirmed {
		return bookingRepo.ErrNotConfirmed
	}
	b.Status = models.BookingStatusCancelled
	if p, ok := f.payments[bookingID]; ok && p.Status == models.PaymentStatusSuccess {
		p.Status = models.PaymentStatusRefunded
	}
	return nil
}

func (f *fakeBookingRepo) AggregateRevenue(ctx context.Context) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total float64
	for _, b := range f.bookings {
		total += b.TotalPrice
	}
	return total, nil
}

func (f *fakeBookingRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, b := range f.bookings {
		if b.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeBookingRepo) CountAll(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.bookings)), nil
}

// fakeSpotRepo is an in-memory SpotRepository.
type fakeSpotRepo struct {
	mu    sync.Mutex
	spots map[string]*models.ParkingSpot
}

func newFakeSpotRepo(spots ...*models.ParkingSpot) *fakeSpotRepo {
	f := &fakeSpotRepo{spots: make(map[string]*models.ParkingSpot)}
	for _, sp := range spots {
		cp := *sp
		f.spots[sp.ID] = &cp
	}
	return f
}

func (f *fakeSpotRepo) Create(ctx context.Context, spot *models.ParkingSpot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *spot
	f.spots[spot.ID] = &cp
	return nil
}

func (f *fakeSpotRepo) Update(ctx context.Context, spot *models.ParkingSpot) error {
	return f.Create(ctx, spot)
}

func (f *fakeSpotRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.spots, id)
	return nil
}

func (f *fakeSpotRepo) GetByID(ctx context.Context, id string) (*models.ParkingSpot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sp, ok := f.spots[id]
	if !ok {
		return nil, nil
	}
	cp := *sp
	return &cp, nil
}

func (f *fakeSpotRepo) FindByOwner(ctx context.Context, ownerID string) ([]models.ParkingSpot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ParkingSpot
	for _, sp := range f.spots {
		if sp.OwnerID == ownerID {
			out = append(out, *sp)
		}
	}
	return out, nil
}

func (f *fakeSpotRepo) Search(ctx context.Context, q spotRepo.SpotQuery) ([]models.ParkingSpot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ParkingSpot
	for _, sp := range f.spots {
		if q.Status != "" && sp.Status != q.Status {
			continue
		}
		out = append(out, *sp)
	}
	return out, nil
}

func (f *fakeSpotRepo) UpdateStatus(ctx context.Context, id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if sp, ok := f.spots[id]; ok {
		sp.Status = status
	}
	return nil
}

func (f *fakeSpotRepo) AddImageURL(ctx context.Context, id, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if sp, ok := f.spots[id]; ok {
		sp.ImageURLs = append(sp.ImageURLs, url)
	}
	return nil
}

func (f *fakeSpotRepo) CountAll(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.spots)), nil
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		cp := *u
		f.users[u.ID] = &cp
	}
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	return f.Create(ctx, user)
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateTokenHash(ctx context.Context, id, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.TokenHash = tokenHash
	}
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, id, role string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.Role = role
	}
	return nil
}

func (f *fakeUserRepo) CountAll(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}
