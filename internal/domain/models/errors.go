package models

import "errors"

// ErrStoreUnavailable indicates the shipment store could not be reached.
var ErrStoreUnavailable = errors.New("shipment store unavailable")

// ErrStoreWrite indicates the store rejected a write.
var ErrStoreWrite = errors.New("shipment store write failed")
