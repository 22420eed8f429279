package booking

import (
	"context"
	"time"

	domain "github.com/LunaStudioApps/salon-scheduler/internal/domain/schedule"
	"github.com/LunaStudioApps/salon-scheduler/internal/httperr"
	"github.com/LunaStudioApps/salon-scheduler/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]string, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, httperr.ErrBusiness("salon_not_found")
	}

	if in.Date == "" {
		return []string{}, nil
	}

	loc := timezone.Location(salon.Timezone)
	day, err := time.ParseInLocation("2006-01-02", in.Date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	blocked, err := uc.repo.ListBlockedPeriods(ctx, salon.ID, in.Date)
	if err != nil {
		return nil, err
	}

	starts, err := uc.repo.ListScheduledStarts(
		ctx,
		in.ProfessionalID,
		day,
		day.Add(24*time.Hour),
	)
	if err != nil {
		return nil, err
	}

	booked := make([]string, 0, len(starts))
	for _, s := range starts {
		booked = append(booked, s.In(loc).Format("15:04"))
	}

	blocks := make([]domain.Block, 0, len(blocked))
	for _, b := range blocked {
		blocks = append(blocks, domain.Block{
			Date:           b.Date,
			ProfessionalID: b.ProfessionalID,
		})
	}

	return domain.Slots(domain.SlotInput{
		OpenTime:       salon.OpenTime,
		CloseTime:      salon.CloseTime,
		IntervalMin:    salon.SlotIntervalMin,
		Date:           in.Date,
		ProfessionalID: in.ProfessionalID,
		Blocked:        blocks,
		BookedTimes:    booked,
	}), nil
}
