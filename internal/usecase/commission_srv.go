package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/data/repository"
	"court-booking/internal/dto/request"
	"court-booking/internal/dto/response"
	"court-booking/pkg/apperror"
	"court-booking/pkg/events"
	"court-booking/pkg/payment/zalopay"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CommissionService interface {
	// Admin and scheduler
	GenerateCommissions(ctx context.Context, req *request.GenerateCommissionRequest) (*response.GenerateCommissionResponse, error)
	GenerateForPreviousMonth(ctx context.Context) error
	ListCommissions(ctx context.Context, req *request.CommissionListRequest) (*response.PaginatedResponse[response.CommissionResponse], error)
	UpdateCommissionStatus(ctx context.Context, id uuid.UUID, req *request.CommissionStatusRequest) (*response.CommissionResponse, error)

	// Owner
	ListMyCommissions(ctx context.Context, actor utils.Actor, req *request.CommissionListRequest) (*response.PaginatedResponse[response.CommissionResponse], error)
	PayCommission(ctx context.Context, actor utils.Actor, id uuid.UUID) (*response.PaymentURLResponse, error)
}

type commissionService struct {
	repo    *repository.Repository
	zalopay *zalopay.Client
	events  events.Publisher
	rate    float64
	now     func() time.Time
	log     *zap.Logger
}

func NewCommissionService(repo *repository.Repository, zlp *zalopay.Client, pub events.Publisher, config *utils.Config, log *zap.Logger) CommissionService {
	return &commissionService{
		repo:    repo,
		zalopay: zlp,
		events:  pub,
		rate:    config.Commission.Rate,
		now:     time.Now,
		log:     log.With(zap.String("service", "commission")),
	}
}

// GenerateCommissions is idempotent: facilities that already have a record for the month are skipped
func (s *commissionService) GenerateCommissions(ctx context.Context, req *request.GenerateCommissionRequest) (*response.GenerateCommissionResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	from := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	if to.After(today(s.now())) {
		return nil, apperror.BadRequest("commissions for %02d/%d can be generated once the month has ended", req.Month, req.Year)
	}

	created, err := s.repo.Commission.GenerateForPeriod(ctx, req.Month, req.Year, s.rate, from, to)
	if err != nil {
		return nil, apperror.Internal(err, "failed to generate commissions")
	}

	s.log.Info("Commissions generated",
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
		zap.Float64("rate", s.rate),
		zap.Int64("created", created))

	return &response.GenerateCommissionResponse{Month: req.Month, Year: req.Year, Created: created}, nil
}

func (s *commissionService) GenerateForPreviousMonth(ctx context.Context) error {
	d := today(s.now())
	prev := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)

	_, err := s.GenerateCommissions(ctx, &request.GenerateCommissionRequest{
		Month: int(prev.Month()),
		Year:  prev.Year(),
	})
	return err
}

func (s *commissionService) ListCommissions(ctx context.Context, req *request.CommissionListRequest) (*response.PaginatedResponse[response.CommissionResponse], error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	return s.list(ctx, entity.CommissionFilter{Status: req.Status, Month: req.Month, Year: req.Year}, req)
}

func (s *commissionService) ListMyCommissions(ctx context.Context, actor utils.Actor, req *request.CommissionListRequest) (*response.PaginatedResponse[response.CommissionResponse], error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	return s.list(ctx, entity.CommissionFilter{
		OwnerID: &actor.UserID,
		Status:  req.Status,
		Month:   req.Month,
		Year:    req.Year,
	}, req)
}

// UpdateCommissionStatus moves an unpaid record between pending and failed; paid is only reached through ZaloPay
func (s *commissionService) UpdateCommissionStatus(ctx context.Context, id uuid.UUID, req *request.CommissionStatusRequest) (*response.CommissionResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	commission, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if commission.Status == entity.CommissionPaid {
		return nil, apperror.BadRequest("paid commissions cannot change status")
	}

	to := entity.CommissionStatus(req.Status)
	if commission.Status == to {
		return nil, apperror.BadRequest("commission is already %s", to)
	}

	ok, err := s.repo.Commission.UpdateStatus(ctx, id, commission.Status, to)
	if err != nil {
		s.log.Error("Failed to update commission status", zap.Error(err), zap.String("commission_id", id.String()))
		return nil, apperror.Internal(err, "failed to update commission")
	}
	if !ok {
		return nil, apperror.Conflict("commission changed while updating, please reload")
	}
	commission.Status = to

	resp := response.CommissionToResponse(commission)
	return &resp, nil
}

func (s *commissionService) PayCommission(ctx context.Context, actor utils.Actor, id uuid.UUID) (*response.PaymentURLResponse, error) {
	if !s.zalopay.Configured() {
		return nil, errGatewayNotConfigured
	}

	commission, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if commission.OwnerID != actor.UserID {
		return nil, apperror.Forbidden("this commission belongs to another owner")
	}
	if commission.Status == entity.CommissionPaid {
		return nil, apperror.BadRequest("commission is already paid")
	}
	if commission.Amount <= 0 {
		return nil, apperror.BadRequest("nothing to pay for this commission")
	}

	appTransID := utils.GenerateAppTransID(s.now())
	if err := s.repo.Commission.AddPaymentAttempt(ctx, id, appTransID); err != nil {
		s.log.Error("Failed to attach app_trans_id", zap.Error(err), zap.String("commission_id", id.String()))
		return nil, apperror.Internal(err, "failed to prepare commission payment")
	}

	period := fmt.Sprintf("%02d/%d", commission.Month, commission.Year)
	order, err := s.zalopay.CreateOrder(ctx, zalopay.OrderRequest{
		AppTransID:  appTransID,
		AppUser:     actor.UserID.String(),
		Amount:      commission.Amount,
		Description: "Phi hoa hong " + period + " " + commission.FacilityName,
		Embed:       zalopay.EmbedData{CommissionID: commission.ID.String()},
		Items: []zalopay.Item{{
			ItemID:       commission.ID.String(),
			ItemName:     "Commission " + period,
			ItemPrice:    commission.Amount,
			ItemQuantity: 1,
		}},
	})
	if err != nil {
		s.log.Error("ZaloPay create order failed", zap.Error(err), zap.String("commission_id", id.String()))
		return nil, apperror.BadGateway(err, "payment gateway unavailable")
	}
	if !order.Succeeded() {
		s.log.Warn("ZaloPay rejected commission order",
			zap.String("commission_id", id.String()),
			zap.Int("return_code", order.ReturnCode),
			zap.String("message", order.ReturnMessage))
		return nil, apperror.BadGateway(errors.New(order.ReturnMessage), "payment gateway rejected the order: %s", order.SubReturnMessage)
	}

	s.log.Info("Commission payment started", zap.String("commission_id", id.String()), zap.String("app_trans_id", appTransID))

	return &response.PaymentURLResponse{
		Provider:   entity.PaymentMethodZaloPay,
		TxnRef:     appTransID,
		Amount:     commission.Amount,
		PaymentURL: order.OrderURL,
	}, nil
}

func (s *commissionService) find(ctx context.Context, id uuid.UUID) (*entity.CommissionPayment, error) {
	commission, err := s.repo.Commission.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find commission", zap.Error(err), zap.String("commission_id", id.String()))
		return nil, apperror.Internal(err, "failed to find commission")
	}
	if commission == nil {
		return nil, apperror.NotFound("commission not found")
	}
	return commission, nil
}

func (s *commissionService) list(ctx context.Context, filter entity.CommissionFilter, req *request.CommissionListRequest) (*response.PaginatedResponse[response.CommissionResponse], error) {
	limit, offset := pageOf(req.PaginatedRequest)

	items, err := s.repo.Commission.FindAll(ctx, filter, limit, offset)
	if err != nil {
		return nil, apperror.Internal(err, "failed to list commissions")
	}
	total, err := s.repo.Commission.CountAll(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err, "failed to count commissions")
	}

	return paginate(items, func(c *entity.CommissionPayment) response.CommissionResponse {
		return response.CommissionToResponse(c)
	}, req.PaginatedRequest, total), nil
}

// markCommissionPaid applies a confirmed ZaloPay payment once and publishes commission.paid
func markCommissionPaid(ctx context.Context, repo *repository.Repository, pub events.Publisher, c *entity.CommissionPayment, zpTransID string, paidAt time.Time, log *zap.Logger) (bool, error) {
	ok, err := repo.Commission.MarkPaid(ctx, c.ID, zpTransID, paidAt)
	if err != nil {
		log.Error("Failed to mark commission paid", zap.Error(err), zap.String("commission_id", c.ID.String()))
		return false, err
	}
	if !ok {
		return false, nil
	}

	evt := events.CommissionPaid{
		CommissionID: c.ID,
		OwnerID:      c.OwnerID,
		FacilityID:   c.FacilityID,
		Month:        c.Month,
		Year:         c.Year,
		Amount:       c.Amount,
		PaidAt:       paidAt,
	}
	if err := pub.Publish(events.TopicCommissionPaid, evt); err != nil {
		log.Warn("Failed to publish commission event", zap.Error(err), zap.String("commission_id", c.ID.String()))
	}

	log.Info("Commission paid",
		zap.String("commission_id", c.ID.String()),
		zap.String("zp_trans_id", zpTransID),
		zap.Int64("amount", c.Amount))
	return true, nil
}
