package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"court-booking/internal/dto/request"
	"court-booking/pkg/apperror"
	"court-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCommissionFixture() (*commissionService, *repoMocks) {
	repo, m := newRepoMocks()
	config := &utils.Config{Commission: utils.CommissionConfig{Rate: 0.05}}

	svc := NewCommissionService(repo, nil, &recordingPublisher{}, config, zap.NewNop()).(*commissionService)
	svc.now = func() time.Time { return time.Date(2024, 4, 1, 1, 0, 0, 0, time.UTC) }
	return svc, m
}

func TestGenerateCommissionsRequiresEndedMonth(t *testing.T) {
	svc, m := newCommissionFixture()

	_, err := svc.GenerateCommissions(context.Background(), &request.GenerateCommissionRequest{Month: 4, Year: 2024})
	assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
	m.Commission.AssertNotCalled(t, "GenerateForPeriod", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateForPreviousMonth(t *testing.T) {
	svc, m := newCommissionFixture()

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	m.Commission.On("GenerateForPeriod", mock.Anything, 3, 2024, 0.05, from, to).Return(int64(4), nil)

	require.NoError(t, svc.GenerateForPreviousMonth(context.Background()))
	m.Commission.AssertExpectations(t)
}

func TestGenerateForPreviousMonthAcrossYear(t *testing.T) {
	svc, m := newCommissionFixture()
	svc.now = func() time.Time { return time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC) }

	m.Commission.On("GenerateForPeriod", mock.Anything, 12, 2023, 0.05, mock.Anything, mock.Anything).Return(int64(0), nil)

	require.NoError(t, svc.GenerateForPreviousMonth(context.Background()))
	m.Commission.AssertExpectations(t)
}
