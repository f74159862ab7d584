// Package domain contains the core business entities, value objects, and
// domain logic of the flashcard tracker: decks, cards, review grades and the
// review lifecycle. It is independent of any storage or delivery mechanism.
package domain
