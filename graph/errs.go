package graph

import "errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrAllocation      = errors.New("allocation error")
	ErrNotFound        = errors.New("not found")
)
