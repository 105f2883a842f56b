package worddetail

import (
	"context"
	"sync"

	"github.com/heartmarshall/myenglish-vocab/internal/domain"
)

var _ relationRepo = &relationRepoMock{}

type relationRepoMock struct {
	TargetsFunc func(ctx context.Context, kind domain.RelationKind, sourceID int64) ([]int64, error)

	calls struct {
		Targets []struct {
			Ctx      context.Context
			Kind     domain.RelationKind
			SourceID int64
		}
	}
	lockTargets sync.RWMutex
}

func (mock *relationRepoMock) Targets(ctx context.Context, kind domain.RelationKind, sourceID int64) ([]int64, error) {
	if mock.TargetsFunc == nil {
		panic("relationRepoMock.TargetsFunc: method is nil but relationRepo.Targets was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Kind     domain.RelationKind
		SourceID int64
	}{Ctx: ctx, Kind: kind, SourceID: sourceID}
	mock.lockTargets.Lock()
	mock.calls.Targets = append(mock.calls.Targets, callInfo)
	mock.lockTargets.Unlock()
	return mock.TargetsFunc(ctx, kind, sourceID)
}

func (mock *relationRepoMock) TargetsCalls() []struct {
	Ctx      context.Context
	Kind     domain.RelationKind
	SourceID int64
} {
	mock.lockTargets.RLock()
	calls := mock.calls.Targets
	mock.lockTargets.RUnlock()
	return calls
}
