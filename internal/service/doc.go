// Package service contains the application use cases for managing decks and
// cards. It orchestrates domain objects and the store interfaces defined in
// internal/store to fulfill the HTTP and CLI features.
//
// Key components:
//
// 1. Service Interfaces:
//   - DeckService manages decks and reports their study statistics
//   - CardService manages cards within decks and their lifecycle status
//
// 2. Transactions:
//   - Operations that touch more than one entity run through store.Transactor
//
// 3. Event Handlers:
//   - DeckActivityHandler reacts to card.reviewed events by stamping the
//     deck's last study time
//
// Review scheduling lives in the card_review subpackage.
package service
