package domain

import "errors"

var (
	ErrNotLoaded     = errors.New("catalog is not loaded")
	ErrLoadFailed    = errors.New("catalog failed to load")
	ErrStatsDisabled = errors.New("search stats are disabled")
)
