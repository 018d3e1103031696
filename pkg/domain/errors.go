package domain

import "errors"

// ErrAreaNotFound is returned when a requested area does not exist in the dataset.
var ErrAreaNotFound = errors.New("area not found")

// ErrNoData is returned when a query matches no observations.
var ErrNoData = errors.New("no data for selection")

// ErrCacheMiss is returned by query caches when a key is absent.
var ErrCacheMiss = errors.New("cache miss")
