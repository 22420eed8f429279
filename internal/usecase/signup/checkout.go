package signup

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/LunaStudioApps/salon-scheduler/internal/audit"
	domain "github.com/LunaStudioApps/salon-scheduler/internal/domain/finance"
	"github.com/LunaStudioApps/salon-scheduler/internal/httperr"
	"github.com/LunaStudioApps/salon-scheduler/internal/models"
)

// ======================================================
// PORTS
// ======================================================

type Repository interface {
	GetPlan(ctx context.Context, id string) (*models.SaaSPlan, error)
	FindActiveCoupon(ctx context.Context, code string) (*models.Coupon, error)
	IncrementCouponUses(ctx context.Context, couponID uint) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	CreateSalon(ctx context.Context, salon *models.Salon) error
}

// PaymentGateway creates the hosted checkout for the first subscription fee.
type PaymentGateway interface {
	CreatePreference(
		ctx context.Context,
		title string,
		amount float64,
		externalReference string,
	) (checkoutURL string, err error)
}

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CheckoutInput struct {
	SalonName  string
	PlanID     string
	CouponCode string
}

type CheckoutOutput struct {
	Salon       *models.Salon `json:"salon"`
	MonthlyFee  float64       `json:"monthly_fee"`
	CheckoutURL string        `json:"checkout_url,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

type Checkout struct {
	repo    Repository
	gateway PaymentGateway
	audit   *audit.Dispatcher
}

func NewCheckout(
	repo Repository,
	gateway PaymentGateway,
	audit *audit.Dispatcher,
) *Checkout {
	return &Checkout{
		repo:    repo,
		gateway: gateway,
		audit:   audit,
	}
}

func (uc *Checkout) Execute(
	ctx context.Context,
	in CheckoutInput,
) (*CheckoutOutput, error) {

	if strings.TrimSpace(in.SalonName) == "" {
		return nil, httperr.ErrBusiness("missing_salon_name")
	}

	plan, err := uc.repo.GetPlan(ctx, in.PlanID)
	if err != nil {
		return nil, httperr.ErrBusiness("plan_not_found")
	}

	fee := plan.Price
	appliedCoupon := ""
	var couponID uint

	if code := strings.ToUpper(strings.TrimSpace(in.CouponCode)); code != "" {
		coupon, err := uc.repo.FindActiveCoupon(ctx, code)
		if err != nil {
			return nil, httperr.ErrBusiness("coupon_invalid")
		}
		fee = domain.ApplyDiscount(fee, coupon.DiscountPercent)
		appliedCoupon = coupon.Code
		couponID = coupon.ID
	}

	slug, err := uc.uniqueSlug(ctx, in.SalonName)
	if err != nil {
		return nil, err
	}

	nextBilling := time.Now().AddDate(0, 0, 30)
	salon := &models.Salon{
		Name:               in.SalonName,
		Slug:               slug,
		Description:        "Novo salão cadastrado.",
		Plan:               plan.ID,
		Address:            "Endereço não informado",
		OpenTime:           "09:00",
		CloseTime:          "18:00",
		SlotIntervalMin:    30,
		SubscriptionStatus: models.SubscriptionActive,
		MonthlyFee:         fee,
		AppliedCoupon:      appliedCoupon,
		NextBillingDate:    &nextBilling,
	}

	if err := uc.repo.CreateSalon(ctx, salon); err != nil {
		return nil, err
	}

	if couponID != 0 {
		if err := uc.repo.IncrementCouponUses(ctx, couponID); err != nil {
			return nil, err
		}
	}

	out := &CheckoutOutput{Salon: salon, MonthlyFee: fee}

	if uc.gateway != nil && fee > 0 {
		url, err := uc.gateway.CreatePreference(
			ctx,
			fmt.Sprintf("Assinatura %s - %s", plan.Name, salon.Name),
			fee,
			salon.Slug,
		)
		if err != nil {
			return nil, httperr.ErrBusiness("payment_gateway_error")
		}
		out.CheckoutURL = url
	}

	uc.audit.Dispatch(audit.Event{
		SalonID: salon.ID,
		Action:  "salon_created",
		Entity:  "salon",
		EntityID: &salon.ID,
	})

	return out, nil
}

var slugCleanup = regexp.MustCompile(`[^a-z0-9]+`)

func (uc *Checkout) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := strings.Trim(slugCleanup.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if base == "" {
		base = "salao"
	}

	slug := base
	for i := 2; ; i++ {
		taken, err := uc.repo.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
