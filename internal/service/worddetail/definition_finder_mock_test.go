package worddetail

import (
	"context"
	"sync"

	"github.com/heartmarshall/myenglish-vocab/internal/wsd"
)

var _ definitionFinder = &definitionFinderMock{}

type definitionFinderMock struct {
	FindDefinitionFunc func(ctx context.Context, word string, sentence string) (wsd.Response, error)

	calls struct {
		FindDefinition []struct {
			Ctx      context.Context
			Word     string
			Sentence string
		}
	}
	lockFindDefinition sync.RWMutex
}

func (mock *definitionFinderMock) FindDefinition(ctx context.Context, word string, sentence string) (wsd.Response, error) {
	if mock.FindDefinitionFunc == nil {
		panic("definitionFinderMock.FindDefinitionFunc: method is nil but definitionFinder.FindDefinition was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Word     string
		Sentence string
	}{Ctx: ctx, Word: word, Sentence: sentence}
	mock.lockFindDefinition.Lock()
	mock.calls.FindDefinition = append(mock.calls.FindDefinition, callInfo)
	mock.lockFindDefinition.Unlock()
	return mock.FindDefinitionFunc(ctx, word, sentence)
}

func (mock *definitionFinderMock) FindDefinitionCalls() []struct {
	Ctx      context.Context
	Word     string
	Sentence string
} {
	mock.lockFindDefinition.RLock()
	calls := mock.calls.FindDefinition
	mock.lockFindDefinition.RUnlock()
	return calls
}
