package handlers

import "errors"

var (
	errMissingCondition = errors.New("condition is required")
	errProviderLookup   = errors.New("provider directory unavailable")
)
