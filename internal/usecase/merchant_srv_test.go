package usecase

import (
	"context"
	"net/http"
	"testing"

	"court-booking/internal/data/entity"
	"court-booking/internal/dto/request"
	"court-booking/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetMineMasksSecret(t *testing.T) {
	repo, m := newRepoMocks()
	actor := ownerActor()
	m.MerchantPayment.On("FindByOwner", mock.Anything, actor.UserID, entity.PaymentMethodVNPay).Return(&entity.MerchantPayment{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		OwnerID:      actor.UserID,
		Provider:     entity.PaymentMethodVNPay,
		MerchantCode: "CBTMN001",
		SecretKey:    "SECRETKEY0123456789ABCD",
		StatusID:     entity.StatusActive,
	}, nil)

	svc := NewMerchantService(repo, zap.NewNop())
	resp, err := svc.GetMine(context.Background(), actor, "")
	require.NoError(t, err)

	assert.Equal(t, "****ABCD", resp.SecretKey)
	assert.Equal(t, "CBTMN001", resp.MerchantCode)
}

func TestGetMineNotConfigured(t *testing.T) {
	repo, m := newRepoMocks()
	actor := ownerActor()
	m.MerchantPayment.On("FindByOwner", mock.Anything, actor.UserID, entity.PaymentMethodVNPay).Return(nil, nil)

	svc := NewMerchantService(repo, zap.NewNop())
	_, err := svc.GetMine(context.Background(), actor, "VNPAY")
	assert.Equal(t, http.StatusNotFound, apperror.CodeOf(err))
}

func TestUpsertMerchantMasksSecretAndRejectsSharedCode(t *testing.T) {
	repo, m := newRepoMocks()
	m.MerchantPayment.On("Upsert", mock.Anything, mock.MatchedBy(func(mp *entity.MerchantPayment) bool {
		return mp.MerchantCode == "CBTMN001"
	})).Return(nil).Once()
	m.MerchantPayment.On("Upsert", mock.Anything, mock.Anything).Return(&pgconn.PgError{Code: "23505"})

	svc := NewMerchantService(repo, zap.NewNop())
	req := &request.MerchantPaymentRequest{Provider: "vnpay", MerchantCode: " CBTMN001 ", SecretKey: "abcdefgh1234"}

	resp, err := svc.Upsert(context.Background(), ownerActor(), req)
	require.NoError(t, err)
	assert.Equal(t, "****1234", resp.SecretKey)

	_, err = svc.Upsert(context.Background(), ownerActor(), req)
	assert.Equal(t, http.StatusConflict, apperror.CodeOf(err))
}
