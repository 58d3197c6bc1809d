package repository

import "errors"

// ErrPriceNotFound is returned by price lookups that reached the source but
// found no usable price for the ticker.
var ErrPriceNotFound = errors.New("price not found")
