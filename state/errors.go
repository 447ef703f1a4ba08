package state

import "errors"

var (
	ErrInvalidTopology = errors.New("invalid topology input")
	ErrNonexistentEdge = errors.New("edge does not exist")
	ErrNonConvergence  = errors.New("routing tables did not converge")
)
