package usecase

import (
	"context"
	"strings"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/data/repository"
	"court-booking/internal/dto/request"
	"court-booking/internal/dto/response"
	"court-booking/pkg/apperror"
	"court-booking/pkg/database"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MerchantService manages the gateway credentials owners collect their own payments with
type MerchantService interface {
	Upsert(ctx context.Context, actor utils.Actor, req *request.MerchantPaymentRequest) (*response.MerchantPaymentResponse, error)
	GetMine(ctx context.Context, actor utils.Actor, provider string) (*response.MerchantPaymentResponse, error)
	Delete(ctx context.Context, actor utils.Actor, provider string) error
}

type merchantService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMerchantService(repo *repository.Repository, log *zap.Logger) MerchantService {
	return &merchantService{
		repo: repo,
		log:  log.With(zap.String("service", "merchant")),
	}
}

func (s *merchantService) Upsert(ctx context.Context, actor utils.Actor, req *request.MerchantPaymentRequest) (*response.MerchantPaymentResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	status := entity.StatusActive
	if req.StatusID != 0 {
		status = entity.StatusID(req.StatusID)
	}

	now := time.Now()
	merchant := &entity.MerchantPayment{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OwnerID:      actor.UserID,
		Provider:     entity.PaymentMethod(req.Provider),
		MerchantCode: strings.TrimSpace(req.MerchantCode),
		SecretKey:    strings.TrimSpace(req.SecretKey),
		StatusID:     status,
	}

	if err := s.repo.MerchantPayment.Upsert(ctx, merchant); err != nil {
		// merchant codes identify the IPN sender, two owners cannot share one
		if database.IsUniqueViolation(err) {
			return nil, apperror.Conflict("merchant code is already registered")
		}
		s.log.Error("Failed to save merchant", zap.Error(err), zap.String("owner_id", actor.UserID.String()))
		return nil, apperror.Internal(err, "failed to save merchant")
	}

	s.log.Info("Merchant saved",
		zap.String("owner_id", actor.UserID.String()),
		zap.String("provider", req.Provider),
		zap.String("merchant_code", merchant.MerchantCode))

	resp := response.MerchantToResponse(merchant)
	return &resp, nil
}

func (s *merchantService) GetMine(ctx context.Context, actor utils.Actor, provider string) (*response.MerchantPaymentResponse, error) {
	merchant, err := s.repo.MerchantPayment.FindByOwner(ctx, actor.UserID, providerOf(provider))
	if err != nil {
		s.log.Error("Failed to find merchant", zap.Error(err), zap.String("owner_id", actor.UserID.String()))
		return nil, apperror.Internal(err, "failed to find merchant")
	}
	if merchant == nil {
		return nil, apperror.NotFound("no %s merchant configured", providerOf(provider))
	}

	resp := response.MerchantToResponse(merchant)
	return &resp, nil
}

func (s *merchantService) Delete(ctx context.Context, actor utils.Actor, provider string) error {
	deleted, err := s.repo.MerchantPayment.Delete(ctx, actor.UserID, providerOf(provider))
	if err != nil {
		s.log.Error("Failed to delete merchant", zap.Error(err), zap.String("owner_id", actor.UserID.String()))
		return apperror.Internal(err, "failed to delete merchant")
	}
	if !deleted {
		return apperror.NotFound("no %s merchant configured", providerOf(provider))
	}
	return nil
}

func providerOf(raw string) entity.PaymentMethod {
	if raw == "" {
		return entity.PaymentMethodVNPay
	}
	return entity.PaymentMethod(strings.ToLower(raw))
}
