package progress

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/memorypower/internal/domain"
	"sync"
	"time"
)

var _ progressRepo = &progressRepoMock{}

type progressRepoMock struct {
	CountByStatusFunc func(ctx context.Context, userID uuid.UUID) (domain.StatusCounts, error)
	CountDueFunc      func(ctx context.Context, userID uuid.UUID, now time.Time) (int, error)
	DeleteByUserFunc  func(ctx context.Context, userID uuid.UUID) (int, error)
	GetFunc           func(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) (*domain.ProgressState, error)
	GetForUpdateFunc  func(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) (*domain.ProgressState, error)
	ListByUserFunc    func(ctx context.Context, userID uuid.UUID, filter domain.ProgressFilter) ([]domain.ProgressState, error)
	SaveFunc          func(ctx context.Context, state *domain.ProgressState) (*domain.ProgressState, error)

	calls struct {
		CountByStatus []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		CountDue []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Now    time.Time
		}
		DeleteByUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		Get []struct {
			Ctx    context.Context
			UserID uuid.UUID
			ItemID uuid.UUID
		}
		GetForUpdate []struct {
			Ctx    context.Context
			UserID uuid.UUID
			ItemID uuid.UUID
		}
		ListByUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Filter domain.ProgressFilter
		}
		Save []struct {
			Ctx   context.Context
			State *domain.ProgressState
		}
	}
	lockCountByStatus sync.RWMutex
	lockCountDue      sync.RWMutex
	lockDeleteByUser  sync.RWMutex
	lockGet           sync.RWMutex
	lockGetForUpdate  sync.RWMutex
	lockListByUser    sync.RWMutex
	lockSave          sync.RWMutex
}

func (mock *progressRepoMock) CountByStatus(ctx context.Context, userID uuid.UUID) (domain.StatusCounts, error) {
	if mock.CountByStatusFunc == nil {
		panic("progressRepoMock.CountByStatusFunc: method is nil but progressRepo.CountByStatus was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockCountByStatus.Lock()
	mock.calls.CountByStatus = append(mock.calls.CountByStatus, callInfo)
	mock.lockCountByStatus.Unlock()
	return mock.CountByStatusFunc(ctx, userID)
}

func (mock *progressRepoMock) CountByStatusCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	var calls []struct {
		Ctx    context.Context
		UserID uuid.UUID
	}
	mock.lockCountByStatus.RLock()
	calls = mock.calls.CountByStatus
	mock.lockCountByStatus.RUnlock()
	return calls
}

func (mock *progressRepoMock) CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	if mock.CountDueFunc == nil {
		panic("progressRepoMock.CountDueFunc: method is nil but progressRepo.CountDue was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Now    time.Time
	}{Ctx: ctx, UserID: userID, Now: now}
	mock.lockCountDue.Lock()
	mock.calls.CountDue = append(mock.calls.CountDue, callInfo)
	mock.lockCountDue.Unlock()
	return mock.CountDueFunc(ctx, userID, now)
}

func (mock *progressRepoMock) CountDueCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Now    time.Time
} {
	var calls []struct {
		Ctx    context.Context
		UserID uuid.UUID
		Now    time.Time
	}
	mock.lockCountDue.RLock()
	calls = mock.calls.CountDue
	mock.lockCountDue.RUnlock()
	return calls
}

func (mock *progressRepoMock) DeleteByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	if mock.DeleteByUserFunc == nil {
		panic("progressRepoMock.DeleteByUserFunc: method is nil but progressRepo.DeleteByUser was just called")
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

func (mock *progressRepoMock) DeleteByUserCalls() []struct {
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

func (mock *progressRepoMock) Get(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) (*domain.ProgressState, error) {
	if mock.GetFunc == nil {
		panic("progressRepoMock.GetFunc: method is nil but progressRepo.Get was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		ItemID uuid.UUID
	}{Ctx: ctx, UserID: userID, ItemID: itemID}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, userID, itemID)
}

func (mock *progressRepoMock) GetCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	ItemID uuid.UUID
} {
	var calls []struct {
		Ctx    context.Context
		UserID uuid.UUID
		ItemID uuid.UUID
	}
	mock.lockGet.RLock()
	calls = mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *progressRepoMock) GetForUpdate(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) (*domain.ProgressState, error) {
	if mock.GetForUpdateFunc == nil {
		panic("progressRepoMock.GetForUpdateFunc: method is nil but progressRepo.GetForUpdate was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		ItemID uuid.UUID
	}{Ctx: ctx, UserID: userID, ItemID: itemID}
	mock.lockGetForUpdate.Lock()
	mock.calls.GetForUpdate = append(mock.calls.GetForUpdate, callInfo)
	mock.lockGetForUpdate.Unlock()
	return mock.GetForUpdateFunc(ctx, userID, itemID)
}

func (mock *progressRepoMock) GetForUpdateCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	ItemID uuid.UUID
} {
	var calls []struct {
		Ctx    context.Context
		UserID uuid.UUID
		ItemID uuid.UUID
	}
	mock.lockGetForUpdate.RLock()
	calls = mock.calls.GetForUpdate
	mock.lockGetForUpdate.RUnlock()
	return calls
}

func (mock *progressRepoMock) ListByUser(ctx context.Context, userID uuid.UUID, filter domain.ProgressFilter) ([]domain.ProgressState, error) {
	if mock.ListByUserFunc == nil {
		panic("progressRepoMock.ListByUserFunc: method is nil but progressRepo.ListByUser was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Filter domain.ProgressFilter
	}{Ctx: ctx, UserID: userID, Filter: filter}
	mock.lockListByUser.Lock()
	mock.calls.ListByUser = append(mock.calls.ListByUser, callInfo)
	mock.lockListByUser.Unlock()
	return mock.ListByUserFunc(ctx, userID, filter)
}

func (mock *progressRepoMock) ListByUserCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Filter domain.ProgressFilter
} {
	var calls []struct {
		Ctx    context.Context
		UserID uuid.UUID
		Filter domain.ProgressFilter
	}
	mock.lockListByUser.RLock()
	calls = mock.calls.ListByUser
	mock.lockListByUser.RUnlock()
	return calls
}

func (mock *progressRepoMock) Save(ctx context.Context, state *domain.ProgressState) (*domain.ProgressState, error) {
	if mock.SaveFunc == nil {
		panic("progressRepoMock.SaveFunc: method is nil but progressRepo.Save was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		State *domain.ProgressState
	}{Ctx: ctx, State: state}
	mock.lockSave.Lock()
	mock.calls.Save = append(mock.calls.Save, callInfo)
	mock.lockSave.Unlock()
	return mock.SaveFunc(ctx, state)
}

func (mock *progressRepoMock) SaveCalls() []struct {
	Ctx   context.Context
	State *domain.ProgressState
} {
	var calls []struct {
		Ctx   context.Context
		State *domain.ProgressState
	}
	mock.lockSave.RLock()
	calls = mock.calls.Save
	mock.lockSave.RUnlock()
	return calls
}
