package llm

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCompleter is a mock implementation of the Completer interface
type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, req Request) (*Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Response), args.Error(1)
}

func (m *MockCompleter) Name() string {
	return "mock"
}
