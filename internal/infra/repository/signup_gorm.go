package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/LunaStudioApps/salon-scheduler/internal/models"
	"github.com/LunaStudioApps/salon-scheduler/internal/usecase/signup"
)

type SignupGormRepository struct {
	db *gorm.DB
}

func NewSignupGormRepository(db *gorm.DB) *SignupGormRepository {
	return &SignupGormRepository{db: db}
}

func (r *SignupGormRepository) GetPlan(
	ctx context.Context,
	id string,
) (*models.SaaSPlan, error) {

	var plan models.SaaSPlan
	if err := r.db.WithContext(ctx).First(&plan, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *SignupGormRepository) FindActiveCoupon(
	ctx context.Context,
	code string,
) (*models.Coupon, error) {

	var coupon models.Coupon
	if err := r.db.WithContext(ctx).
		Where("code = ? AND active = true", code).
		First(&coupon).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *SignupGormRepository) IncrementCouponUses(
	ctx context.Context,
	couponID uint,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Coupon{}).
		Where("id = ?", couponID).
		UpdateColumn("uses", gorm.Expr("uses + 1")).Error
}

func (r *SignupGormRepository) SlugExists(
	ctx context.Context,
	slug string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Salon{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SignupGormRepository) CreateSalon(
	ctx context.Context,
	salon *models.Salon,
) error {
	return r.db.WithContext(ctx).Create(salon).Error
}

// Compile-time check
var _ signup.Repository = (*SignupGormRepository)(nil)
