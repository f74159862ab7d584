// Package mocks provides centralized mock implementations for testing.
//
// Store and event mocks are built on testify's mock.Mock so tests can set
// expectations with On(...).Return(...) and verify them with
// AssertExpectations. Service mocks use function fields with default return
// values, for handler tests that only need canned responses.
//
// Usage:
//
//	cards := new(mocks.MockCardStore)
//	cards.On("GetByID", mock.Anything, id).Return(card, nil)
//	tx := mocks.NewMockTransactor(store.Stores{Cards: cards, Decks: decks})
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Pick testify expectations or function fields to match its neighbours
//  3. Add a compile-time assertion that the mock satisfies the interface
package mocks
