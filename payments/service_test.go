package payments

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/almusafir/travel_booking/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fixedClock struct {
	t time.Time
}

func (f fixedClock) Now() time.Time { return f.t }

func (f fixedClock) Today() time.Time {
	return time.Date(f.t.Year(), f.t.Month(), f.t.Day(), 0, 0, 0, 0, f.t.Location())
}

type fakeStore struct {
	mu   sync.Mutex
	rows []models.Installment
}

func (s *fakeStore) CreateBatch(_ context.Context, installments []*models.Installment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, installment := range installments {
		for _, row := range s.rows {
			if row.TenantID == installment.TenantID &&
				row.BookingID == installment.BookingID &&
				row.InstallmentNumber == installment.InstallmentNumber {
				return ErrPlanExists
			}
		}
	}
	for _, installment := range installments {
		installment.ID = uuid.New()
		s.rows = append(s.rows, *installment)
	}
	return nil
}

func (s *fakeStore) Create(_ context.Context, installment *models.Installment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	installment.ID = uuid.New()
	s.rows = append(s.rows, *installment)
	return nil
}

func (s *fakeStore) Exists(_ context.Context, tenantID, bookingID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.TenantID == tenantID && row.BookingID == bookingID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) FindByBooking(_ context.Context, tenantID, bookingID string) ([]models.Installment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var found []models.Installment
	for n := 1; n <= len(s.rows); n++ {
		for _, row := range s.rows {
			if row.TenantID == tenantID && row.BookingID == bookingID && row.InstallmentNumber == n {
				found = append(found, row)
			}
		}
	}
	return found, nil
}

func (s *fakeStore) FindOne(_ context.Context, tenantID, bookingID string, installmentNumber int) (*models.Installment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.TenantID == tenantID && row.BookingID == bookingID && row.InstallmentNumber == installmentNumber {
			copied := row
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) Update(_ context.Context, tenantID, bookingID string, installmentNumber int, apply func(*models.Installment) error) (*models.Installment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, row := range s.rows {
		if row.TenantID == tenantID && row.BookingID == bookingID && row.InstallmentNumber == installmentNumber {
			copied := row
			if err := apply(&copied); err != nil {
				return nil, err
			}
			s.rows[i] = copied
			result := copied
			return &result, nil
		}
	}
	return nil, nil
}

type fakeGateway struct {
	lastRequest *OrderRequest
	order       *Order
	err         error
}

func (g *fakeGateway) CreateOrder(_ context.Context, req OrderRequest) (*Order, error) {
	g.lastRequest = &req
	if g.err != nil {
		return nil, g.err
	}
	return g.order, nil
}

var testToday = time.Date(2026, time.March, 1, 10, 30, 0, 0, time.UTC)

func newTestService(configured bool) (*Service, *fakeStore, *fakeGateway) {
	store := &fakeStore{}
	gateway := &fakeGateway{order: &Order{ID: "order_test_1", Status: "created"}}
	cfg := Config{
		OffsetsDays: [3]int{DefaultOffsetFirst, DefaultOffsetSecond, DefaultOffsetThird},
		Parts:       DefaultInstallmentParts,
	}
	if configured {
		cfg.GatewayKeyID = "key_id_test"
		cfg.GatewayKeySecret = "key_secret_test"
	}
	return NewService(store, gateway, cfg, fixedClock{t: testToday}), store, gateway
}

func travelDateString(days int) string {
	return testToday.AddDate(0, 0, days).Format("2006-01-02")
}

func TestCreatePlanSplitsAndSchedules(t *testing.T) {
	svc, _, _ := newTestService(true)

	plan, err := svc.CreatePlan(context.Background(), "public", "bk-1", 100, travelDateString(100))
	assert.NoError(t, err)
	assert.Len(t, plan, 3)

	travel := testToday.AddDate(0, 0, 100).Truncate(24 * time.Hour)
	assert.Equal(t, int64(34), plan[0].Amount)
	assert.Equal(t, int64(33), plan[1].Amount)
	assert.Equal(t, int64(33), plan[2].Amount)

	for i, installment := range plan {
		assert.Equal(t, i+1, installment.InstallmentNumber)
		assert.Equal(t, 3, installment.TotalInstallments)
		assert.Equal(t, StatusDue, installment.Status)
		assert.Equal(t, ProviderGateway, installment.PaymentProvider)
		assert.Equal(t, "public", installment.TenantID)
		assert.NotNil(t, installment.TravelDate)
		assert.Nil(t, installment.PaidAt)
	}

	assert.Equal(t, travel.AddDate(0, 0, -45), plan[0].DueDate)
	assert.Equal(t, travel.AddDate(0, 0, -30), plan[1].DueDate)
	assert.Equal(t, travel.AddDate(0, 0, -15), plan[2].DueDate)
}

func TestCreatePlanIsIdempotent(t *testing.T) {
	svc, store, _ := newTestService(true)

	first, err := svc.CreatePlan(context.Background(), "public", "bk-1", 100, travelDateString(100))
	assert.NoError(t, err)

	second, err := svc.CreatePlan(context.Background(), "public", "bk-1", 100, travelDateString(100))
	assert.NoError(t, err)

	assert.Len(t, store.rows, 3, "repeat create must not add rows")
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Amount, second[i].Amount)
		assert.Equal(t, first[i].DueDate, second[i].DueDate)
	}
}

// staleExistsStore reports no plan even when rows are present, the way a
// concurrent writer that commits between the existence check and the batch
// insert would look to the loser of that race.
type staleExistsStore struct {
	*fakeStore
}

func (s *staleExistsStore) Exists(context.Context, string, string) (bool, error) {
	return false, nil
}

func TestCreatePlanRecoversFromInsertRace(t *testing.T) {
	svc, store, _ := newTestService(true)
	ctx := context.Background()

	winner, err := svc.CreatePlan(ctx, "public", "bk-1", 99, travelDateString(90))
	assert.NoError(t, err)

	loser := NewService(&staleExistsStore{fakeStore: store}, &fakeGateway{}, Config{
		GatewayKeyID:     "key_id_test",
		GatewayKeySecret: "key_secret_test",
		OffsetsDays:      [3]int{45, 30, 15},
		Parts:            3,
	}, fixedClock{t: testToday})

	// The duplicate-key collision must resolve to the winner's plan, not an
	// error and not a second set of rows.
	recovered, err := loser.CreatePlan(ctx, "public", "bk-1", 99, travelDateString(90))
	assert.NoError(t, err)
	assert.Len(t, recovered, 3)
	assert.Len(t, store.rows, 3)
	for i := range winner {
		assert.Equal(t, winner[i].ID, recovered[i].ID)
		assert.Equal(t, winner[i].Amount, recovered[i].Amount)
	}
}

func TestCreatePlanValidation(t *testing.T) {
	svc, _, _ := newTestService(true)
	ctx := context.Background()

	cases := []struct {
		name       string
		bookingID  string
		amount     int64
		travelDate string
	}{
		{"blank booking", "  ", 100, travelDateString(100)},
		{"zero amount", "bk-1", 0, travelDateString(100)},
		{"negative amount", "bk-1", -5, travelDateString(100)},
		{"malformed date", "bk-1", 100, "next friday"},
		{"past date", "bk-1", 100, travelDateString(-1)},
		{"today", "bk-1", 100, travelDateString(0)},
		{"too near for a ladder", "bk-1", 100, travelDateString(3)},
	}
	for _, tc := range cases {
		_, err := svc.CreatePlan(ctx, "public", tc.bookingID, tc.amount, tc.travelDate)
		assert.Equal(t, KindValidation, KindOf(err), tc.name)
	}
}

func TestCreatePlanTenantIsolation(t *testing.T) {
	svc, store, _ := newTestService(true)
	ctx := context.Background()

	_, err := svc.CreatePlan(ctx, "acme", "bk-1", 100, travelDateString(100))
	assert.NoError(t, err)

	// Same booking id under a different tenant is a distinct plan.
	_, err = svc.CreatePlan(ctx, "globex", "bk-1", 200, travelDateString(100))
	assert.NoError(t, err)
	assert.Len(t, store.rows, 6)

	acme, err := svc.GetPlan(ctx, "acme", "bk-1")
	assert.NoError(t, err)
	assert.Len(t, acme, 3)
	assert.Equal(t, int64(34), acme[0].Amount)
}

func TestPayInstallment(t *testing.T) {
	svc, _, _ := newTestService(true)
	ctx := context.Background()

	_, err := svc.CreatePlan(ctx, "public", "bk-1", 100, travelDateString(100))
	assert.NoError(t, err)

	paid, err := svc.PayInstallment(ctx, "public", "bk-1", 1)
	assert.NoError(t, err)
	assert.Equal(t, StatusPaid, paid.Status)
	assert.NotNil(t, paid.PaidAt)
	assert.Equal(t, testToday, *paid.PaidAt)
}

func TestPayInstallmentIdempotent(t *testing.T) {
	svc, _, _ := newTestService(true)
	ctx := context.Background()

	_, err := svc.CreatePlan(ctx, "public", "bk-1", 100, travelDateString(100))
	assert.NoError(t, err)

	first, err := svc.PayInstallment(ctx, "public", "bk-1", 2)
	assert.NoError(t, err)

	second, err := svc.PayInstallment(ctx, "public", "bk-1", 2)
	assert.NoError(t, err)
	assert.Equal(t, StatusPaid, second.Status)
	assert.Equal(t, *first.PaidAt, *second.PaidAt, "repeat pay must not restamp paidAt")
}

func TestPayInstallmentNotFound(t *testing.T) {
	svc, _, _ := newTestService(true)
	ctx := context.Background()

	_, err := svc.PayInstallment(ctx, "public", "bk-missing", 1)
	assert.Equal(t, KindNotFound, KindOf(err))

	_, planErr := svc.CreatePlan(ctx, "public", "bk-1", 100, travelDateString(100))
	assert.NoError(t, planErr)

	_, err = svc.PayInstallment(ctx, "public", "bk-1", 4)
	assert.Equal(t, KindNotFound, KindOf(err))

	// Another tenant cannot see the plan at all.
	_, err = svc.PayInstallment(ctx, "acme", "bk-1", 1)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestPayInstallmentDeadline(t *testing.T) {
	svc, store, _ := newTestService(true)
	ctx := context.Background()

	_, err := svc.CreatePlan(ctx, "public", "bk-1", 100, travelDateString(10))
	assert.NoError(t, err)
	_, err = svc.PayInstallment(ctx, "public", "bk-1", 3)
	assert.NoError(t, err)

	// Same data seen from on and after the travel date.
	for _, offset := range []int{10, 11} {
		late := NewService(store, &fakeGateway{}, Config{
			GatewayKeyID:     "key_id_test",
			GatewayKeySecret: "key_secret_test",
			OffsetsDays:      [3]int{45, 30, 15},
			Parts:            3,
		}, fixedClock{t: testToday.AddDate(0, 0, offset)})

		_, err = late.PayInstallment(ctx, "public", "bk-1", 1)
		assert.Equal(t, KindDeadlineExceeded, KindOf(err))

		// Already-paid installments are refused too once travel has begun.
		_, err = late.PayInstallment(ctx, "public", "bk-1", 3)
		assert.Equal(t, KindDeadlineExceeded, KindOf(err))
	}
}

func TestCreateOrderRequiresConfiguration(t *testing.T) {
	svc, _, _ := newTestService(false)

	_, err := svc.CreateOrder(context.Background(), "public", "bk-1", 1, "upi")
	assert.Equal(t, KindConfiguration, KindOf(err))
}

func TestCreateOrderHappyPath(t *testing.T) {
	svc, store, gateway := newTestService(true)
	ctx := context.Background()

	_, err := svc.CreatePlan(ctx, "public", "bk-1", 100, travelDateString(100))
	assert.NoError(t, err)

	details, err := svc.CreateOrder(ctx, "public", "bk-1", 1, " UPI ")
	assert.NoError(t, err)
	assert.Equal(t, "order_test_1", details.OrderID)
	assert.Equal(t, int64(3400), details.Amount)
	assert.Equal(t, "INR", details.Currency)
	assert.Equal(t, "key_id_test", details.KeyID)

	assert.Equal(t, int64(3400), gateway.lastRequest.Amount)
	assert.Equal(t, "booking-bk-1-inst-1", gateway.lastRequest.Receipt)
	assert.Equal(t, "bk-1", gateway.lastRequest.Notes["bookingId"])
	assert.Equal(t, "1", gateway.lastRequest.Notes["installmentNumber"])
	assert.Equal(t, "public", gateway.lastRequest.Notes["tenantId"])

	stored, _ := store.FindOne(ctx, "public", "bk-1", 1)
	assert.NotNil(t, stored.ExternalOrderID)
	assert.Equal(t, "order_test_1", *stored.ExternalOrderID)
	assert.Equal(t, "upi", stored.PaymentMethod)
	assert.Equal(t, StatusDue, stored.Status, "order creation must not settle")
}

func TestCreateOrderRejections(t *testing.T) {
	svc, _, _ := newTestService(true)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, "public", "bk-missing", 1, "upi")
	assert.Equal(t, KindNotFound, KindOf(err))

	_, planErr := svc.CreatePlan(ctx, "public", "bk-1", 100, travelDateString(100))
	assert.NoError(t, planErr)
	_, payErr := svc.PayInstallment(ctx, "public", "bk-1", 1)
	assert.NoError(t, payErr)

	_, err = svc.CreateOrder(ctx, "public", "bk-1", 1, "upi")
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestCreateOrderUpstreamFailure(t *testing.T) {
	svc, store, gateway := newTestService(true)
	ctx := context.Background()

	_, err := svc.CreatePlan(ctx, "public", "bk-1", 100, travelDateString(100))
	assert.NoError(t, err)

	gateway.err = errors.New("connection reset")
	_, err = svc.CreateOrder(ctx, "public", "bk-1", 1, "upi")
	assert.Equal(t, KindUpstream, KindOf(err))

	stored, _ := store.FindOne(ctx, "public", "bk-1", 1)
	assert.Nil(t, stored.ExternalOrderID, "no partial state on remote failure")
}

func TestVerifyAndSettle(t *testing.T) {
	svc, store, _ := newTestService(true)
	ctx := context.Background()

	_, err := svc.CreatePlan(ctx, "public", "bk-1", 100, travelDateString(100))
	assert.NoError(t, err)

	signature := SignPayment("key_secret_test", "order_1", "pay_1")
	settled, err := svc.VerifyAndSettle(ctx, "public", "bk-1", 1, "order_1", "pay_1", signature, " Card ")
	assert.NoError(t, err)
	assert.Equal(t, StatusPaid, settled.Status)
	assert.NotNil(t, settled.PaidAt)
	assert.Equal(t, "order_1", *settled.ExternalOrderID)
	assert.Equal(t, "pay_1", *settled.ExternalPaymentID)
	assert.Equal(t, "card", settled.PaymentMethod)

	stored, _ := store.FindOne(ctx, "public", "bk-1", 1)
	assert.Equal(t, StatusPaid, stored.Status)
}

func TestVerifyAndSettleForgedSignature(t *testing.T) {
	svc, store, _ := newTestService(true)
	ctx := context.Background()

	_, err := svc.CreatePlan(ctx, "public", "bk-1", 100, travelDateString(100))
	assert.NoError(t, err)

	signature := SignPayment("key_secret_test", "order_1", "pay_1")
	forged := signature[:len(signature)-1] + "x"

	_, err = svc.VerifyAndSettle(ctx, "public", "bk-1", 1, "order_1", "pay_1", forged, "card")
	assert.Equal(t, KindAuthentication, KindOf(err))

	stored, _ := store.FindOne(ctx, "public", "bk-1", 1)
	assert.Equal(t, StatusDue, stored.Status, "forged callback must not settle")
	assert.Nil(t, stored.PaidAt)
	assert.Nil(t, stored.ExternalPaymentID)
}

func TestVerifyAndSettleValidation(t *testing.T) {
	svc, _, _ := newTestService(true)
	ctx := context.Background()

	_, err := svc.VerifyAndSettle(ctx, "public", "bk-1", 1, "", "pay_1", "sig", "card")
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = svc.VerifyAndSettle(ctx, "public", "bk-1", 0, "order_1", "pay_1", "sig", "card")
	assert.Equal(t, KindValidation, KindOf(err))

	unconfigured, _, _ := newTestService(false)
	_, err = unconfigured.VerifyAndSettle(ctx, "public", "bk-1", 1, "order_1", "pay_1", "sig", "card")
	assert.Equal(t, KindConfiguration, KindOf(err))
}

func TestChargeCreatesSettledInstallment(t *testing.T) {
	svc, store, _ := newTestService(true)

	installment, err := svc.Charge(context.Background(), "public", "bk-direct", 500)
	assert.NoError(t, err)
	assert.Equal(t, 1, installment.InstallmentNumber)
	assert.Equal(t, 1, installment.TotalInstallments)
	assert.Equal(t, int64(500), installment.Amount)
	assert.Equal(t, StatusPaid, installment.Status)
	assert.Equal(t, ProviderManual, installment.PaymentProvider)
	assert.NotNil(t, installment.PaidAt)
	assert.Equal(t, testToday.Truncate(24*time.Hour), installment.DueDate)
	assert.Len(t, store.rows, 1)
}
