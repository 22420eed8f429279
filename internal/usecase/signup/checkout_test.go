package signup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/LunaStudioApps/salon-scheduler/internal/audit"
	"github.com/LunaStudioApps/salon-scheduler/internal/httperr"
	"github.com/LunaStudioApps/salon-scheduler/internal/models"
)

type fakeSignupRepo struct {
	plans   map[string]*models.SaaSPlan
	coupons map[string]*models.Coupon
	salons  []*models.Salon
}

func newFakeSignupRepo() *fakeSignupRepo {
	return &fakeSignupRepo{
		plans: map[string]*models.SaaSPlan{
			"start":        {ID: "start", Name: "Start", Price: 29.90},
			"professional": {ID: "professional", Name: "Professional", Price: 59.90},
		},
		coupons: map[string]*models.Coupon{
			"BEMVINDO10": {ID: 1, Code: "BEMVINDO10", DiscountPercent: 10, Active: true},
			"GRATIS":     {ID: 2, Code: "GRATIS", DiscountPercent: 100, Active: true},
		},
	}
}

func (f *fakeSignupRepo) GetPlan(_ context.Context, id string) (*models.SaaSPlan, error) {
	p, ok := f.plans[id]
	if !ok {
		return nil, httperr.ErrBusiness("plan_not_found")
	}
	return p, nil
}

func (f *fakeSignupRepo) FindActiveCoupon(_ context.Context, code string) (*models.Coupon, error) {
	c, ok := f.coupons[code]
	if !ok || !c.Active {
		return nil, httperr.ErrBusiness("coupon_invalid")
	}
	return c, nil
}

func (f *fakeSignupRepo) IncrementCouponUses(_ context.Context, couponID uint) error {
	for _, c := range f.coupons {
		if c.ID == couponID {
			c.Uses++
		}
	}
	return nil
}

func (f *fakeSignupRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, s := range f.salons {
		if s.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSignupRepo) CreateSalon(_ context.Context, salon *models.Salon) error {
	salon.ID = uint(len(f.salons) + 1)
	f.salons = append(f.salons, salon)
	return nil
}

var _ Repository = (*fakeSignupRepo)(nil)

type fakeGateway struct {
	calls int
	title string
}

func (g *fakeGateway) CreatePreference(_ context.Context, title string, amount float64, ref string) (string, error) {
	g.calls++
	g.title = title
	return "https://pay.example/" + ref, nil
}

func nopAudit() *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(nil), zap.NewNop())
}

func TestCheckoutCreatesSalonWithPlanDefaults(t *testing.T) {
	repo := newFakeSignupRepo()
	gateway := &fakeGateway{}
	uc := NewCheckout(repo, gateway, nopAudit())

	out, err := uc.Execute(context.Background(), CheckoutInput{
		SalonName: "Bela Vida Hair",
		PlanID:    "start",
	})

	require.NoError(t, err)
	assert.Equal(t, "bela-vida-hair", out.Salon.Slug)
	assert.Equal(t, "start", out.Salon.Plan)
	assert.Equal(t, 29.90, out.MonthlyFee)
	assert.Equal(t, "09:00", out.Salon.OpenTime)
	assert.Equal(t, "18:00", out.Salon.CloseTime)
	assert.Equal(t, 30, out.Salon.SlotIntervalMin)
	assert.NotNil(t, out.Salon.NextBillingDate)

	assert.Equal(t, 1, gateway.calls)
	assert.NotEmpty(t, out.CheckoutURL)
}

func TestCheckoutAppliesCouponAndCountsUse(t *testing.T) {
	repo := newFakeSignupRepo()
	uc := NewCheckout(repo, &fakeGateway{}, nopAudit())

	out, err := uc.Execute(context.Background(), CheckoutInput{
		SalonName:  "Studio Luna",
		PlanID:     "start",
		CouponCode: "bemvindo10",
	})

	require.NoError(t, err)
	assert.Equal(t, 26.91, out.MonthlyFee)
	assert.Equal(t, "BEMVINDO10", out.Salon.AppliedCoupon)
	assert.Equal(t, 1, repo.coupons["BEMVINDO10"].Uses)
}

func TestCheckoutFreeCouponSkipsGateway(t *testing.T) {
	repo := newFakeSignupRepo()
	gateway := &fakeGateway{}
	uc := NewCheckout(repo, gateway, nopAudit())

	out, err := uc.Execute(context.Background(), CheckoutInput{
		SalonName:  "Studio Luna",
		PlanID:     "start",
		CouponCode: "GRATIS",
	})

	require.NoError(t, err)
	assert.Zero(t, out.MonthlyFee)
	assert.Zero(t, gateway.calls)
	assert.Empty(t, out.CheckoutURL)
}

func TestCheckoutSlugCollisionGetsSuffix(t *testing.T) {
	repo := newFakeSignupRepo()
	uc := NewCheckout(repo, &fakeGateway{}, nopAudit())

	first, err := uc.Execute(context.Background(), CheckoutInput{
		SalonName: "Studio Luna", PlanID: "start",
	})
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), CheckoutInput{
		SalonName: "Studio Luna", PlanID: "start",
	})
	require.NoError(t, err)

	third, err := uc.Execute(context.Background(), CheckoutInput{
		SalonName: "Studio Luna!!!", PlanID: "start",
	})
	require.NoError(t, err)

	assert.Equal(t, "studio-luna", first.Salon.Slug)
	assert.Equal(t, "studio-luna-2", second.Salon.Slug)
	assert.Equal(t, "studio-luna-3", third.Salon.Slug)
}

func TestCheckoutRejectsUnknownPlanAndCoupon(t *testing.T) {
	repo := newFakeSignupRepo()
	uc := NewCheckout(repo, &fakeGateway{}, nopAudit())

	_, err := uc.Execute(context.Background(), CheckoutInput{
		SalonName: "Studio Luna", PlanID: "enterprise",
	})
	assert.True(t, httperr.IsBusiness(err, "plan_not_found"))

	_, err = uc.Execute(context.Background(), CheckoutInput{
		SalonName: "Studio Luna", PlanID: "start", CouponCode: "NADA",
	})
	assert.True(t, httperr.IsBusiness(err, "coupon_invalid"))
	assert.Empty(t, repo.salons)
}

func TestCheckoutWithoutGateway(t *testing.T) {
	repo := newFakeSignupRepo()
	uc := NewCheckout(repo, nil, nopAudit())

	out, err := uc.Execute(context.Background(), CheckoutInput{
		SalonName: "Studio Luna", PlanID: "professional",
	})

	require.NoError(t, err)
	assert.Equal(t, 59.90, out.MonthlyFee)
	assert.Empty(t, out.CheckoutURL)
}
