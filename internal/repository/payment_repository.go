package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"assetverse/internal/model"
)

// PaymentRepository defines payment and checkout-session persistence
// operations.
type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment *model.Payment) error
	ListPaymentsByHR(ctx context.Context, hrEmail string) ([]model.Payment, error)
	CreateSession(ctx context.Context, session *model.CheckoutSession) error
	FindSessionByTrackingID(ctx context.Context, trackingID string) (*model.CheckoutSession, error)
	UpdateSession(ctx context.Context, session *model.CheckoutSession) error
	ExpireStaleSessions(ctx context.Context, now time.Time) (int64, error)
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository.
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) CreatePayment(ctx context.Context, payment *model.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// ListPaymentsByHR returns an HR's payments, newest first.
func (r *paymentRepository) ListPaymentsByHR(ctx context.Context, hrEmail string) ([]model.Payment, error) {
	var payments []model.Payment
	if err := r.db.WithContext(ctx).
		Where("hr_email = ?", hrEmail).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) CreateSession(ctx context.Context, session *model.CheckoutSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *paymentRepository) FindSessionByTrackingID(ctx context.Context, trackingID string) (*model.CheckoutSession, error) {
	var session model.CheckoutSession
	if err := r.db.WithContext(ctx).Where("tracking_id = ?", trackingID).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *paymentRepository) UpdateSession(ctx context.Context, session *model.CheckoutSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

// ExpireStaleSessions flips pending sessions past their deadline to
// expired and reports how many rows changed.
func (r *paymentRepository) ExpireStaleSessions(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.CheckoutSession{}).
		Where("status = ? AND expires_at < ?", model.CheckoutStatusPending, now).
		Update("status", model.CheckoutStatusExpired)
	return result.RowsAffected, result.Error
}
