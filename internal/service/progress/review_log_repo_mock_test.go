package progress

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/memorypower/internal/domain"
	"sync"
	"time"
)

var _ reviewLogRepo = &reviewLogRepoMock{}

type reviewLogRepoMock struct {
	CountTodayFunc    func(ctx context.Context, userID uuid.UUID, dayStart time.Time) (int, error)
	CreateFunc        func(ctx context.Context, log *domain.ReviewLog) (*domain.ReviewLog, error)
	DeleteByUserFunc  func(ctx context.Context, userID uuid.UUID) (int, error)
	GetStreakDaysFunc func(ctx context.Context, userID uuid.UUID, dayStart time.Time, lastNDays int, timezone string) ([]domain.DayReviewCount, error)
	ListByItemFunc    func(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, limit int, offset int) ([]domain.ReviewLog, int, error)

	calls struct {
		CountToday []struct {
			Ctx      context.Context
			UserID   uuid.UUID
			DayStart time.Time
		}
		Create []struct {
			Ctx context.Context
			Log *domain.ReviewLog
		}
		DeleteByUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		GetStreakDays []struct {
			Ctx       context.Context
			UserID    uuid.UUID
			DayStart  time.Time
			LastNDays int
			Timezone  string
		}
		ListByItem []struct {
			Ctx    context.Context
			UserID uuid.UUID
			ItemID uuid.UUID
			Limit  int
			Offset int
		}
	}
	lockCountToday    sync.RWMutex
	lockCreate        sync.RWMutex
	lockDeleteByUser  sync.RWMutex
	lockGetStreakDays sync.RWMutex
	lockListByItem    sync.RWMutex
}

func (mock *reviewLogRepoMock) CountToday(ctx context.Context, userID uuid.UUID, dayStart time.Time) (int, error) {
	if mock.CountTodayFunc == nil {
		panic("reviewLogRepoMock.CountTodayFunc: method is nil but reviewLogRepo.CountToday was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		UserID   uuid.UUID
		DayStart time.Time
	}{Ctx: ctx, UserID: userID, DayStart: dayStart}
	mock.lockCountToday.Lock()
	mock.calls.CountToday = append(mock.calls.CountToday, callInfo)
	mock.lockCountToday.Unlock()
	return mock.CountTodayFunc(ctx, userID, dayStart)
}

func (mock *reviewLogRepoMock) CountTodayCalls() []struct {
	Ctx      context.Context
	UserID   uuid.UUID
	DayStart time.Time
} {
	var calls []struct {
		Ctx      context.Context
		UserID   uuid.UUID
		DayStart time.Time
	}
	mock.lockCountToday.RLock()
	calls = mock.calls.CountToday
	mock.lockCountToday.RUnlock()
	return calls
}

func (mock *reviewLogRepoMock) Create(ctx context.Context, log *domain.ReviewLog) (*domain.ReviewLog, error) {
	if mock.CreateFunc == nil {
		panic("reviewLogRepoMock.CreateFunc: method is nil but reviewLogRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Log *domain.ReviewLog
	}{Ctx: ctx, Log: log}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, log)
}

func (mock *reviewLogRepoMock) CreateCalls() []struct {
	Ctx context.Context
	Log *domain.ReviewLog
} {
	var calls []struct {
		Ctx context.Context
		Log *domain.ReviewLog
	}
	mock.lockCreate.RLock()
	calls = mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *reviewLogRepoMock) DeleteByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	if mock.DeleteByUserFunc == nil {
		panic("reviewLogRepoMock.DeleteByUserFunc: method is nil but reviewLogRepo.DeleteByUser was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockDeleteByUser.Lock()
	mock.calls.DeleteByUser = append(mock.calls.DeleteByUser, callInfo)
	mock.lockDeleteByUser.Unlock()
	return mock.DeleteByUserFunc(ctx, userID)
}

func (mock *reviewLogRepoMock) DeleteByUserCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	var calls []struct {
		Ctx    context.Context
		UserID uuid.UUID
	}
	mock.lockDeleteByUser.RLock()
	calls = mock.calls.DeleteByUser
	mock.lockDeleteByUser.RUnlock()
	return calls
}

func (mock *reviewLogRepoMock) GetStreakDays(ctx context.Context, userID uuid.UUID, dayStart time.Time, lastNDays int, timezone string) ([]domain.DayReviewCount, error) {
	if mock.GetStreakDaysFunc == nil {
		panic("reviewLogRepoMock.GetStreakDaysFunc: method is nil but reviewLogRepo.GetStreakDays was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		UserID    uuid.UUID
		DayStart  time.Time
		LastNDays int
		Timezone  string
	}{Ctx: ctx, UserID: userID, DayStart: dayStart, LastNDays: lastNDays, Timezone: timezone}
	mock.lockGetStreakDays.Lock()
	mock.calls.GetStreakDays = append(mock.calls.GetStreakDays, callInfo)
	mock.lockGetStreakDays.Unlock()
	return mock.GetStreakDaysFunc(ctx, userID, dayStart, lastNDays, timezone)
}

func (mock *reviewLogRepoMock) GetStreakDaysCalls() []struct {
	Ctx       context.Context
	UserID    uuid.UUID
	DayStart  time.Time
	LastNDays int
	Timezone  string
} {
	var calls []struct {
		Ctx       context.Context
		UserID    uuid.UUID
		DayStart  time.Time
		LastNDays int
		Timezone  string
	}
	mock.lockGetStreakDays.RLock()
	calls = mock.calls.GetStreakDays
	mock.lockGetStreakDays.RUnlock()
	return calls
}

func (mock *reviewLogRepoMock) ListByItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, limit int, offset int) ([]domain.ReviewLog, int, error) {
	if mock.ListByItemFunc == nil {
		panic("reviewLogRepoMock.ListByItemFunc: method is nil but reviewLogRepo.ListByItem was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		ItemID uuid.UUID
		Limit  int
		Offset int
	}{Ctx: ctx, UserID: userID, ItemID: itemID, Limit: limit, Offset: offset}
	mock.lockListByItem.Lock()
	mock.calls.ListByItem = append(mock.calls.ListByItem, callInfo)
	mock.lockListByItem.Unlock()
	return mock.ListByItemFunc(ctx, userID, itemID, limit, offset)
}

func (mock *reviewLogRepoMock) ListByItemCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	ItemID uuid.UUID
	Limit  int
	Offset int
} {
	var calls []struct {
		Ctx    context.Context
		UserID uuid.UUID
		ItemID uuid.UUID
		Limit  int
		Offset int
	}
	mock.lockListByItem.RLock()
	calls = mock.calls.ListByItem
	mock.lockListByItem.RUnlock()
	return calls
}
