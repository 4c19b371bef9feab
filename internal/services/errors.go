package services

import "errors"

// ErrValidation marks bad or inconsistent input caught before any write.
var ErrValidation = errors.New("validation failed")
