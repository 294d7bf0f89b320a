package store

import (
	"fmt"
	"slices"
)

// DType names the element type of a tensor as written in the header.
type DType string

const (
	BOOL    DType = "BOOL"
	U8      DType = "U8"
	I8      DType = "I8"
	U16     DType = "U16"
	I16     DType = "I16"
	U32     DType = "U32"
	I32     DType = "I32"
	U64     DType = "U64"
	I64     DType = "I64"
	F16     DType = "F16"
	BF16    DType = "BF16"
	F32     DType = "F32"
	F64     DType = "F64"
	F8E4M3  DType = "F8_E4M3"
	F8E5M2  DType = "F8_E5M2"
)

var dtypeSizes = map[DType]int{
	BOOL:   1,
	U8:     1,
	I8:     1,
	F8E4M3: 1,
	F8E5M2: 1,
	U16:    2,
	I16:    2,
	F16:    2,
	BF16:   2,
	U32:    4,
	I32:    4,
	F32:    4,
	U64:    8,
	I64:    8,
	F64:    8,
}

// DTypes returns every supported dtype.
func DTypes() []DType {
	res := make([]DType, 0, len(dtypeSizes))
	for dt := range dtypeSizes {
		res = append(res, dt)
	}
	slices.Sort(res)
	return res
}

// Size returns the size in bytes of one element, or 0 for an unknown
// dtype.
func (dt DType) Size() int {
	return dtypeSizes[dt]
}

func (dt DType) Valid() bool {
	_, ok := dtypeSizes[dt]
	return ok
}

func (dt DType) String() string {
	return string(dt)
}

func (dt *DType) UnmarshalText(d []byte) error {
	x := DType(d)
	if !x.Valid() {
		return fmt.Errorf("%w: unknown dtype %q", ErrInvalidHeader, string(d))
	}
	*dt = x
	return nil
}

func (dt DType) MarshalText() ([]byte, error) {
	if !dt.Valid() {
		return nil, fmt.Errorf("unknown dtype %q", string(dt))
	}
	return []byte(dt), nil
}
