// Package events provides types and interfaces for in-process domain events.
//
// Services emit events without knowing which handlers will process them.
// The only event today is CardReviewed, emitted after a review is committed.
package events
