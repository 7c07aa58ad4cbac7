package progress

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/memorypower/internal/domain"
	"sync"
)

var _ pointsLedger = &pointsLedgerMock{}

type pointsLedgerMock struct {
	AwardFunc       func(ctx context.Context, award domain.PointsAward) error
	TotalByUserFunc func(ctx context.Context, userID uuid.UUID) (int, error)

	calls struct {
		Award []struct {
			Ctx   context.Context
			Award domain.PointsAward
		}
		TotalByUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lockAward       sync.RWMutex
	lockTotalByUser sync.RWMutex
}

func (mock *pointsLedgerMock) Award(ctx context.Context, award domain.PointsAward) error {
	if mock.AwardFunc == nil {
		panic("pointsLedgerMock.AwardFunc: method is nil but pointsLedger.Award was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Award domain.PointsAward
	}{Ctx: ctx, Award: award}
	mock.lockAward.Lock()
	mock.calls.Award = append(mock.calls.Award, callInfo)
	mock.lockAward.Unlock()
	return mock.AwardFunc(ctx, award)
}

func (mock *pointsLedgerMock) AwardCalls() []struct {
	Ctx   context.Context
	Award domain.PointsAward
} {
	var calls []struct {
		Ctx   context.Context
		Award domain.PointsAward
	}
	mock.lockAward.RLock()
	calls = mock.calls.Award
	mock.lockAward.RUnlock()
	return calls
}

func (mock *pointsLedgerMock) TotalByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	if mock.TotalByUserFunc == nil {
		panic("pointsLedgerMock.TotalByUserFunc: method is nil but pointsLedger.TotalByUser was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockTotalByUser.Lock()
	mock.calls.TotalByUser = append(mock.calls.TotalByUser, callInfo)
	mock.lockTotalByUser.Unlock()
	return mock.TotalByUserFunc(ctx, userID)
}

func (mock *pointsLedgerMock) TotalByUserCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	var calls []struct {
		Ctx    context.Context
		UserID uuid.UUID
	}
	mock.lockTotalByUser.RLock()
	calls = mock.calls.TotalByUser
	mock.lockTotalByUser.RUnlock()
	return calls
}
