package redis

import "errors"

// ErrKeyNotFound is returned when a key does not exist
var ErrKeyNotFound = errors.New("key not found")
