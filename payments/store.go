package payments

import (
	"context"
	"errors"

	"github.com/almusafir/travel_booking/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrPlanExists signals that another request already inserted installments
// for the same (tenant, booking) key. CreatePlan resolves it by re-reading
// the winner's rows.
var ErrPlanExists = errors.New("installment plan already exists for booking")

// InstallmentStore is the persistence boundary of the payment core. Every
// method is scoped by tenant; nothing here can read or touch another
// tenant's rows.
type InstallmentStore interface {
	// CreateBatch inserts a full plan in one transaction. All rows land or
	// none do.
	CreateBatch(ctx context.Context, installments []*models.Installment) error
	Create(ctx context.Context, installment *models.Installment) error
	Exists(ctx context.Context, tenantID, bookingID string) (bool, error)
	FindByBooking(ctx context.Context, tenantID, bookingID string) ([]models.Installment, error)
	// FindOne returns nil (no error) when no installment matches the key.
	FindOne(ctx context.Context, tenantID, bookingID string, installmentNumber int) (*models.Installment, error)
	// Update re-reads the row under a row lock, applies the mutation, and
	// saves, so concurrent settlements of one installment serialize. An
	// error returned by apply aborts without writing.
	Update(ctx context.Context, tenantID, bookingID string, installmentNumber int, apply func(*models.Installment) error) (*models.Installment, error)
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateBatch(ctx context.Context, installments []*models.Installment) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, installment := range installments {
			if err := tx.Create(installment).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrPlanExists
	}
	return err
}

func (s *GormStore) Create(ctx context.Context, installment *models.Installment) error {
	return s.db.WithContext(ctx).Create(installment).Error
}

func (s *GormStore) Exists(ctx context.Context, tenantID, bookingID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Installment{}).
		Where("tenant_id = ? AND booking_id = ?", tenantID, bookingID).
		Count(&count).Error
	return count > 0, err
}

func (s *GormStore) FindByBooking(ctx context.Context, tenantID, bookingID string) ([]models.Installment, error) {
	var installments []models.Installment
	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND booking_id = ?", tenantID, bookingID).
		Order("installment_number ASC").
		Find(&installments).Error
	return installments, err
}

func (s *GormStore) FindOne(ctx context.Context, tenantID, bookingID string, installmentNumber int) (*models.Installment, error) {
	var installment models.Installment
	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND booking_id = ? AND installment_number = ?", tenantID, bookingID, installmentNumber).
		First(&installment).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &installment, nil
}

func (s *GormStore) Update(ctx context.Context, tenantID, bookingID string, installmentNumber int, apply func(*models.Installment) error) (*models.Installment, error) {
	var installment models.Installment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("tenant_id = ? AND booking_id = ? AND installment_number = ?", tenantID, bookingID, installmentNumber).
			First(&installment).Error; err != nil {
			return err
		}
		if err := apply(&installment); err != nil {
			return err
		}
		return tx.Save(&installment).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &installment, nil
}
