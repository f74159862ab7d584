package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/learning-tracker/internal/domain"
	"github.com/phrazzld/learning-tracker/internal/store"
	"github.com/stretchr/testify/mock"
)

var (
	_ store.DeckStore  = (*MockDeckStore)(nil)
	_ store.CardStore  = (*MockCardStore)(nil)
	_ store.Transactor = (*MockTransactor)(nil)
)

// MockDeckStore is a testify mock of store.DeckStore.
type MockDeckStore struct {
	mock.Mock
}

func (m *MockDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	args := m.Called(ctx, deck)
	return args.Error(0)
}

func (m *MockDeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deck), args.Error(1)
}

func (m *MockDeckStore) List(ctx context.Context) ([]*domain.Deck, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Deck), args.Error(1)
}

func (m *MockDeckStore) Update(ctx context.Context, deck *domain.Deck) error {
	args := m.Called(ctx, deck)
	return args.Error(0)
}

func (m *MockDeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDeckStore) TouchLastStudied(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockCardStore is a testify mock of store.CardStore.
type MockCardStore struct {
	mock.Mock
}

func (m *MockCardStore) Create(ctx context.Context, card *domain.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *MockCardStore) List(ctx context.Context, filter store.CardFilter) ([]*domain.Card, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Card), args.Error(1)
}

func (m *MockCardStore) Update(ctx context.Context, card *domain.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTransactor runs transaction callbacks directly against Stores. Err,
// when set, is returned instead of running the callback, simulating a
// failure to begin the transaction.
type MockTransactor struct {
	Stores store.Stores
	Err    error

	// Calls counts WithinTx invocations.
	Calls int
}

// NewMockTransactor returns a transactor whose callbacks receive stores.
func NewMockTransactor(stores store.Stores) *MockTransactor {
	return &MockTransactor{Stores: stores}
}

// WithinTx implements store.Transactor.
func (m *MockTransactor) WithinTx(
	ctx context.Context,
	fn func(ctx context.Context, stores store.Stores) error,
) error {
	m.Calls++
	if m.Err != nil {
		return m.Err
	}
	return fn(ctx, m.Stores)
}
