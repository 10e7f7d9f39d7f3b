package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ==================== IN-MEMORY FAKES ====================

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

type fakeTourRepo struct {
	tours map[uuid.UUID]*entity.Tour
}

func (r *fakeTourRepo) Create(ctx context.Context, tour *entity.Tour) error {
	r.tours[tour.ID] = tour
	return nil
}

func (r *fakeTourRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tour, error) {
	return r.tours[id], nil
}

func (r *fakeTourRepo) FindAllActive(ctx context.Context, limit, offset int) ([]*entity.Tour, error) {
	return nil, nil
}

func (r *fakeTourRepo) CountAllActive(ctx context.Context) (int64, error) { return 0, nil }

func (r *fakeTourRepo) FindByGuideID(ctx context.Context, guideID uuid.UUID, limit, offset int) ([]*entity.Tour, error) {
	return nil, nil
}

func (r *fakeTourRepo) Update(ctx context.Context, tour *entity.Tour) error {
	r.tours[tour.ID] = tour
	return nil
}

func (r *fakeTourRepo) Deactivate(ctx context.Context, id uuid.UUID) error { return nil }

// fakeBookingRepo meniru semantik compare-and-swap repository asli:
// Save hanya berhasil kalau version tersimpan masih sama dengan
// expectedVersion, lalu menaikkan version satu.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*entity.Booking

	// beforeSave disisipkan di antara load dan save untuk mensimulasikan
	// request lain yang menang duluan.
	beforeSave func()
}

func copyBooking(b *entity.Booking) *entity.Booking {
	cp := *b
	cp.Extras = append([]entity.BookingExtra(nil), b.Extras...)
	return &cp
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[booking.ID] = copyBooking(booking)
	return nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	return copyBooking(stored), nil
}

func (r *fakeBookingRepo) FindByParticipantID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Booking
	for _, b := range r.bookings {
		if b.TravelerID == userID || b.GuideID == userID {
			out = append(out, copyBooking(b))
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) CountByParticipantID(ctx context.Context, userID uuid.UUID) (int64, error) {
	bookings, _ := r.FindByParticipantID(ctx, userID, 0, 0)
	return int64(len(bookings)), nil
}

func (r *fakeBookingRepo) Save(ctx context.Context, booking *entity.Booking, expectedVersion int) error {
	if r.beforeSave != nil {
		hook := r.beforeSave
		r.beforeSave = nil
		hook()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.bookings[booking.ID]
	if !ok || stored.Version != expectedVersion {
		return repository.ErrVersionConflict
	}

	booking.Version = expectedVersion + 1
	r.bookings[booking.ID] = copyBooking(booking)
	return nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus, expectedVersion int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.bookings[bookingID]
	if !ok || stored.Version != expectedVersion {
		return repository.ErrVersionConflict
	}

	stored.Status = status
	stored.Version++
	return nil
}

type fakeNotifier struct {
	events []BookingEvent
}

func (n *fakeNotifier) Notify(ctx context.Context, event BookingEvent, booking *entity.Booking) {
	n.events = append(n.events, event)
}

// ==================== FIXTURE ====================

type bookingFixture struct {
	service  BookingService
	bookings *fakeBookingRepo
	notifier *fakeNotifier

	traveler *entity.User
	guide    *entity.User
	admin    *entity.User
	tour     *entity.Tour
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	now := time.Now()
	traveler := &entity.User{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now},
		Username: "wanderer",
		Role:     entity.RoleTraveler,
		IsActive: true,
	}
	guide := &entity.User{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now},
		Username: "localpro",
		Role:     entity.RoleGuide,
		IsActive: true,
	}
	admin := &entity.User{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now},
		Username: "ops",
		Role:     entity.RoleAdmin,
		IsActive: true,
	}
	tour := &entity.Tour{
		Base:           entity.Base{ID: uuid.New(), CreatedAt: now},
		GuideID:        guide.ID,
		Title:          "Old Town Walk",
		BasePriceCents: 100_00,
		PricingMode:    entity.PricingPerGroup,
		MaxTravelers:   10,
		IsActive:       true,
	}

	users := &fakeUserRepo{users: map[uuid.UUID]*entity.User{
		traveler.ID: traveler,
		guide.ID:    guide,
		admin.ID:    admin,
	}}
	tours := &fakeTourRepo{tours: map[uuid.UUID]*entity.Tour{tour.ID: tour}}
	bookings := &fakeBookingRepo{bookings: map[uuid.UUID]*entity.Booking{}}
	notifier := &fakeNotifier{}

	repo := &repository.Repository{
		User:    users,
		Tour:    tours,
		Booking: bookings,
	}

	return &bookingFixture{
		service:  NewBookingService(repo, notifier, zap.NewNop()),
		bookings: bookings,
		notifier: notifier,
		traveler: traveler,
		guide:    guide,
		admin:    admin,
		tour:     tour,
	}
}

func (f *bookingFixture) createBooking(t *testing.T, travelerCount int) string {
	t.Helper()

	resp, err := f.service.CreateBooking(context.Background(), f.traveler.ID.String(), &request.CreateBookingRequest{
		TourID:        f.tour.ID.String(),
		TravelerCount: travelerCount,
	})
	require.NoError(t, err)
	return resp.ID
}

func lunchProposal() *request.NegotiateBookingRequest {
	extras := []request.ExtraRequest{
		{Description: "Lunch", PriceCents: 10_00, PricingMode: "per_traveler"},
	}
	return &request.NegotiateBookingRequest{Extras: &extras}
}

func approvalRequest(side string, value bool) *request.NegotiateBookingRequest {
	return &request.NegotiateBookingRequest{
		Approval: &request.ApprovalRequest{Side: side, Value: value},
	}
}

// ==================== TESTS ====================

func TestBookingService_CreateBooking(t *testing.T) {
	f := newBookingFixture(t)

	resp, err := f.service.CreateBooking(context.Background(), f.traveler.ID.String(), &request.CreateBookingRequest{
		TourID:        f.tour.ID.String(),
		TravelerCount: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(100_00), resp.TotalPriceCents)
	assert.Equal(t, entity.BookingStatusPending, resp.Status)
	assert.Equal(t, 1, resp.Version)
	assert.Equal(t, "Old Town Walk", resp.TourTitle)
	assert.False(t, resp.TravelerApproved)
	assert.False(t, resp.GuideApproved)
	assert.Equal(t, []BookingEvent{EventBookingCreated}, f.notifier.events)
}

func TestBookingService_CreateBooking_Rejections(t *testing.T) {
	f := newBookingFixture(t)

	t.Run("unknown tour", func(t *testing.T) {
		_, err := f.service.CreateBooking(context.Background(), f.traveler.ID.String(), &request.CreateBookingRequest{
			TourID:        uuid.NewString(),
			TravelerCount: 2,
		})
		assert.Equal(t, ErrKindNotFound, KindOf(err))
	})

	t.Run("over capacity", func(t *testing.T) {
		_, err := f.service.CreateBooking(context.Background(), f.traveler.ID.String(), &request.CreateBookingRequest{
			TourID:        f.tour.ID.String(),
			TravelerCount: 11,
		})
		assert.Equal(t, ErrKindValidation, KindOf(err))
	})

	t.Run("guide booking own tour", func(t *testing.T) {
		_, err := f.service.CreateBooking(context.Background(), f.guide.ID.String(), &request.CreateBookingRequest{
			TourID:        f.tour.ID.String(),
			TravelerCount: 2,
		})
		assert.Equal(t, ErrKindValidation, KindOf(err))
	})
}

func TestBookingService_Negotiate_FullRound(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	bookingID := f.createBooking(t, 4)

	// Guide mengusulkan lunch per traveler.
	resp, err := f.service.Negotiate(ctx, f.guide.ID.String(), bookingID, lunchProposal())
	require.NoError(t, err)
	assert.Equal(t, int64(140_00), resp.TotalPriceCents)
	assert.True(t, resp.GuideApproved)
	assert.False(t, resp.TravelerApproved)
	assert.Equal(t, entity.BookingStatusPending, resp.Status)
	assert.Equal(t, 2, resp.Version)

	// Traveler setuju; deal tertutup.
	resp, err = f.service.Negotiate(ctx, f.traveler.ID.String(), bookingID, approvalRequest("traveler", true))
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusAgreed, resp.Status)
	assert.True(t, resp.TravelerApproved)
	assert.True(t, resp.GuideApproved)
	assert.Equal(t, 3, resp.Version)

	assert.Equal(t, []BookingEvent{
		EventBookingCreated,
		EventBookingNegotiated,
		EventBookingNegotiated,
	}, f.notifier.events)
}

func TestBookingService_Negotiate_Forbidden(t *testing.T) {
	f := newBookingFixture(t)
	bookingID := f.createBooking(t, 2)

	// Caller terautentikasi tapi bukan participant booking ini.
	_, err := f.service.Negotiate(context.Background(), uuid.NewString(), bookingID, lunchProposal())
	assert.Equal(t, ErrKindForbidden, KindOf(err))
}

func TestBookingService_Negotiate_NotFound(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.Negotiate(context.Background(), f.traveler.ID.String(), uuid.NewString(), lunchProposal())
	assert.Equal(t, ErrKindNotFound, KindOf(err))
}

func TestBookingService_Negotiate_VersionConflict(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	bookingID := f.createBooking(t, 4)

	// Di antara load dan save traveler, guide menang duluan.
	f.bookings.beforeSave = func() {
		_, err := f.service.Negotiate(ctx, f.guide.ID.String(), bookingID, lunchProposal())
		require.NoError(t, err)
	}

	_, err := f.service.Negotiate(ctx, f.traveler.ID.String(), bookingID, approvalRequest("traveler", true))
	require.Error(t, err)
	assert.Equal(t, ErrKindConflict, KindOf(err))

	// Reload dan submit ulang berhasil.
	resp, err := f.service.Negotiate(ctx, f.traveler.ID.String(), bookingID, approvalRequest("traveler", true))
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusAgreed, resp.Status)
	assert.Equal(t, int64(140_00), resp.TotalPriceCents)
	assert.Equal(t, 3, resp.Version)
}

func TestBookingService_CancelBooking(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	bookingID := f.createBooking(t, 2)

	require.NoError(t, f.service.CancelBooking(ctx, f.traveler.ID.String(), bookingID))

	// Booking yang sudah cancelled tidak bisa dinegosiasikan lagi.
	_, err := f.service.Negotiate(ctx, f.guide.ID.String(), bookingID, lunchProposal())
	assert.Equal(t, ErrKindImmutable, KindOf(err))

	// Cancel dua kali juga ditolak.
	err = f.service.CancelBooking(ctx, f.guide.ID.String(), bookingID)
	assert.Equal(t, ErrKindImmutable, KindOf(err))

	assert.Contains(t, f.notifier.events, EventBookingCancelled)
}

func TestBookingService_MarkPaid(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	bookingID := f.createBooking(t, 2)

	// Belum agreed: pembayaran ditolak.
	err := f.service.MarkPaid(ctx, bookingID)
	assert.Equal(t, ErrKindValidation, KindOf(err))

	_, err = f.service.Negotiate(ctx, f.guide.ID.String(), bookingID, approvalRequest("guide", true))
	require.NoError(t, err)

	require.NoError(t, f.service.MarkPaid(ctx, bookingID))

	// Paid itu terminal.
	err = f.service.CancelBooking(ctx, f.traveler.ID.String(), bookingID)
	assert.Equal(t, ErrKindImmutable, KindOf(err))

	assert.Contains(t, f.notifier.events, EventBookingPaid)
}

func TestBookingService_GetBookingByID_Authorization(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	bookingID := f.createBooking(t, 2)

	for _, user := range []*entity.User{f.traveler, f.guide, f.admin} {
		resp, err := f.service.GetBookingByID(ctx, user.ID.String(), bookingID)
		require.NoError(t, err, "user %s", user.Username)
		assert.Equal(t, bookingID, resp.ID)
	}

	_, err := f.service.GetBookingByID(ctx, uuid.NewString(), bookingID)
	assert.Equal(t, ErrKindForbidden, KindOf(err))
}
