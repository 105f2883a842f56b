package worddetail

import (
	"context"
	"sync"

	"github.com/heartmarshall/myenglish-vocab/internal/domain"
)

var _ sentenceRepo = &sentenceRepoMock{}

type sentenceRepoMock struct {
	GetByIDFunc    func(ctx context.Context, id int64) (domain.Sentence, error)
	ListByBookFunc func(ctx context.Context, bookID int64) ([]domain.Sentence, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  int64
		}
		ListByBook []struct {
			Ctx    context.Context
			BookID int64
		}
	}
	lockGetByID    sync.RWMutex
	lockListByBook sync.RWMutex
}

func (mock *sentenceRepoMock) GetByID(ctx context.Context, id int64) (domain.Sentence, error) {
	if mock.GetByIDFunc == nil {
		panic("sentenceRepoMock.GetByIDFunc: method is nil but sentenceRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *sentenceRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *sentenceRepoMock) ListByBook(ctx context.Context, bookID int64) ([]domain.Sentence, error) {
	if mock.ListByBookFunc == nil {
		panic("sentenceRepoMock.ListByBookFunc: method is nil but sentenceRepo.ListByBook was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		BookID int64
	}{Ctx: ctx, BookID: bookID}
	mock.lockListByBook.Lock()
	mock.calls.ListByBook = append(mock.calls.ListByBook, callInfo)
	mock.lockListByBook.Unlock()
	return mock.ListByBookFunc(ctx, bookID)
}

func (mock *sentenceRepoMock) ListByBookCalls() []struct {
	Ctx    context.Context
	BookID int64
} {
	mock.lockListByBook.RLock()
	calls := mock.calls.ListByBook
	mock.lockListByBook.RUnlock()
	return calls
}
