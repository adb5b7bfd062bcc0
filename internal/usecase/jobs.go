package usecase

import (
	"context"

	"court-booking/pkg/utils"

	"go.uber.org/zap"
)

// JobRegistrar is satisfied by *scheduler.Scheduler
type JobRegistrar interface {
	Register(name, spec string, job func(ctx context.Context) error) error
}

// RegisterJobs wires the periodic maintenance work onto the scheduler
func RegisterJobs(r JobRegistrar, svc *Service, config *utils.Config, log *zap.Logger) error {
	log = log.With(zap.String("component", "jobs"))

	jobs := []struct {
		name string
		spec string
		run  func(ctx context.Context) error
	}{
		{
			name: "expire-pending-bookings",
			spec: config.Booking.ExpiryCronSpec,
			run: func(ctx context.Context) error {
				_, err := svc.Booking.ExpirePending(ctx)
				return err
			},
		},
		{
			name: "clean-expired-sessions",
			spec: config.Booking.SessionCleanupSpec,
			run: func(ctx context.Context) error {
				n, err := svc.Auth.CleanExpiredSessions(ctx)
				if err == nil && n > 0 {
					log.Info("Expired sessions removed", zap.Int64("count", n))
				}
				return err
			},
		},
		{
			name: "generate-monthly-commissions",
			spec: config.Commission.CronSpec,
			run:  svc.Commission.GenerateForPreviousMonth,
		},
	}

	for _, j := range jobs {
		if j.spec == "" {
			log.Info("Job disabled", zap.String("job", j.name))
			continue
		}
		if err := r.Register(j.name, j.spec, j.run); err != nil {
			return err
		}
	}
	return nil
}
