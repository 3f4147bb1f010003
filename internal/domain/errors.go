package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrProvider indicates the search call failed (network, HTTP status, decoding)
	ErrProvider = errors.New("search provider failed")

	// ErrCancelled indicates a search was superseded before it completed
	ErrCancelled = errors.New("search cancelled")

	// ErrThumbnail indicates a preview image could not be fetched or decoded
	ErrThumbnail = errors.New("thumbnail unavailable")

	// ErrPlayerNotFound indicates no usable media player could be started
	ErrPlayerNotFound = errors.New("no media player found")

	// ErrNotPlayable indicates the selected item cannot be played
	ErrNotPlayable = errors.New("item is not playable")

	// ErrServerOffline indicates the search instance is unreachable
	ErrServerOffline = errors.New("search instance is unreachable")

	// ErrNotFound indicates the instance answered 404
	ErrNotFound = errors.New("resource not found")
)
