package flat

import (
	"errors"

	"github.com/treeflat/go-treeflat/ir"
	"github.com/treeflat/go-treeflat/ir/kpath"
)

var (
	ErrShapeMismatch = errors.New("shape mismatch")

	ErrMalformedPath = kpath.ErrMalformedPath
	ErrTypeMismatch  = ir.ErrTypeMismatch
)
