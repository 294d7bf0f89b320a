package store

import "errors"

var (
	ErrInvalidHeader = errors.New("invalid safetensors header")
	ErrNotTensor     = errors.New("value is not a tensor")
	ErrDType         = errors.New("dtype mismatch")
)
