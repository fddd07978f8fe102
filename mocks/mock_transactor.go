package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTransactor is a mock implementation of port.Transactor. It executes fn
// with the caller's context, so the unit under test runs as if inside a
// transaction.
type MockTransactor struct {
	mock.Mock
}

func (m *MockTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

// NewPassthroughTransactor returns a MockTransactor that always runs fn.
func NewPassthroughTransactor() *MockTransactor {
	t := &MockTransactor{}
	t.On("WithinTx", mock.Anything, mock.Anything).Return(nil)
	return t
}
