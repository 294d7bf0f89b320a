package store

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"slices"
)

// Tensor is a dense little-endian array of DType elements.
type Tensor struct {
	DType DType
	Shape []int
	Data  []byte
}

// NewF32 returns a float32 tensor holding vals. Without a shape the tensor
// is one-dimensional. NewF32 panics if the shape does not fit vals.
func NewF32(vals []float32, shape ...int) *Tensor {
	t := alloc(F32, len(vals), shape)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(t.Data[4*i:], math.Float32bits(v))
	}
	return t
}

// NewF64 is NewF32 for float64.
func NewF64(vals []float64, shape ...int) *Tensor {
	t := alloc(F64, len(vals), shape)
	for i, v := range vals {
		binary.LittleEndian.PutUint64(t.Data[8*i:], math.Float64bits(v))
	}
	return t
}

// NewI64 is NewF32 for int64.
func NewI64(vals []int64, shape ...int) *Tensor {
	t := alloc(I64, len(vals), shape)
	for i, v := range vals {
		binary.LittleEndian.PutUint64(t.Data[8*i:], uint64(v))
	}
	return t
}

// NewBool is NewF32 for bool.
func NewBool(vals []bool, shape ...int) *Tensor {
	t := alloc(BOOL, len(vals), shape)
	for i, v := range vals {
		if v {
			t.Data[i] = 1
		}
	}
	return t
}

func alloc(dt DType, n int, shape []int) *Tensor {
	if shape == nil {
		shape = []int{n}
	}
	t := &Tensor{DType: dt, Shape: slices.Clone(shape)}
	if t.NumElements() != n {
		panic(fmt.Sprintf("store: %d values do not fit shape %v", n, shape))
	}
	t.Data = make([]byte, n*dt.Size())
	return t
}

// Scalar returns a zero-dimensional tensor holding v. Integers become I64,
// floats F32 or F64 by width, and bools BOOL.
func Scalar(v any) (*Tensor, error) {
	var t *Tensor
	switch x := v.(type) {
	case bool:
		t = NewBool([]bool{x})
	case int:
		t = NewI64([]int64{int64(x)})
	case int32:
		t = NewI64([]int64{int64(x)})
	case int64:
		t = NewI64([]int64{x})
	case float32:
		t = NewF32([]float32{x})
	case float64:
		t = NewF64([]float64{x})
	default:
		return nil, fmt.Errorf("%w: cannot make a scalar of %T", ErrNotTensor, v)
	}
	t.Shape = []int{}
	return t, nil
}

// NumElements is the product of the shape; 1 for a scalar.
func (t *Tensor) NumElements() int {
	n := 1
	for _, d := range t.Shape {
		n *= d
	}
	return n
}

// NumBytes is the size of the tensor's data as the header describes it.
func (t *Tensor) NumBytes() int {
	return t.NumElements() * t.DType.Size()
}

// sizeOf returns the number of bytes a tensor of the given dtype and
// shape occupies, or false if that does not fit in an int.
func sizeOf(dt DType, shape []int) (int, bool) {
	if slices.Contains(shape, 0) {
		return 0, true
	}
	n := dt.Size()
	for _, d := range shape {
		if n > math.MaxInt/d {
			return 0, false
		}
		n *= d
	}
	return n, true
}

func (t *Tensor) check() error {
	if !t.DType.Valid() {
		return fmt.Errorf("%w: unknown dtype %q", ErrInvalidHeader, string(t.DType))
	}
	for _, d := range t.Shape {
		if d < 0 {
			return fmt.Errorf("%w: negative dimension in shape %v", ErrInvalidHeader, t.Shape)
		}
	}
	size, ok := sizeOf(t.DType, t.Shape)
	if !ok {
		return fmt.Errorf("%w: shape %v of %s overflows", ErrInvalidHeader, t.Shape, t.DType)
	}
	if len(t.Data) != size {
		return fmt.Errorf("%w: %s needs %d bytes, have %d", ErrInvalidHeader, t, size, len(t.Data))
	}
	return nil
}

func (t *Tensor) Float32s() ([]float32, error) {
	if t.DType != F32 {
		return nil, fmt.Errorf("%w: %s is not %s", ErrDType, t.DType, F32)
	}
	res := make([]float32, t.NumElements())
	for i := range res {
		res[i] = math.Float32frombits(binary.LittleEndian.Uint32(t.Data[4*i:]))
	}
	return res, nil
}

func (t *Tensor) Float64s() ([]float64, error) {
	if t.DType != F64 {
		return nil, fmt.Errorf("%w: %s is not %s", ErrDType, t.DType, F64)
	}
	res := make([]float64, t.NumElements())
	for i := range res {
		res[i] = math.Float64frombits(binary.LittleEndian.Uint64(t.Data[8*i:]))
	}
	return res, nil
}

func (t *Tensor) Int64s() ([]int64, error) {
	if t.DType != I64 {
		return nil, fmt.Errorf("%w: %s is not %s", ErrDType, t.DType, I64)
	}
	res := make([]int64, t.NumElements())
	for i := range res {
		res[i] = int64(binary.LittleEndian.Uint64(t.Data[8*i:]))
	}
	return res, nil
}

func (t *Tensor) Bools() ([]bool, error) {
	if t.DType != BOOL {
		return nil, fmt.Errorf("%w: %s is not %s", ErrDType, t.DType, BOOL)
	}
	res := make([]bool, t.NumElements())
	for i := range res {
		res[i] = t.Data[i] != 0
	}
	return res, nil
}

// elements decodes the data of the dtypes that have a natural Go
// representation.
func (t *Tensor) elements() (any, bool) {
	n := t.NumElements()
	le := binary.LittleEndian
	switch t.DType {
	case F32:
		v, _ := t.Float32s()
		return v, true
	case F64:
		v, _ := t.Float64s()
		return v, true
	case I64:
		v, _ := t.Int64s()
		return v, true
	case BOOL:
		v, _ := t.Bools()
		return v, true
	case U8:
		res := make([]uint16, n) // []uint8 would marshal as base64
		for i := range res {
			res[i] = uint16(t.Data[i])
		}
		return res, true
	case I8:
		res := make([]int8, n)
		for i := range res {
			res[i] = int8(t.Data[i])
		}
		return res, true
	case U16:
		res := make([]uint16, n)
		for i := range res {
			res[i] = le.Uint16(t.Data[2*i:])
		}
		return res, true
	case I16:
		res := make([]int16, n)
		for i := range res {
			res[i] = int16(le.Uint16(t.Data[2*i:]))
		}
		return res, true
	case U32:
		res := make([]uint32, n)
		for i := range res {
			res[i] = le.Uint32(t.Data[4*i:])
		}
		return res, true
	case I32:
		res := make([]int32, n)
		for i := range res {
			res[i] = int32(le.Uint32(t.Data[4*i:]))
		}
		return res, true
	case U64:
		res := make([]uint64, n)
		for i := range res {
			res[i] = le.Uint64(t.Data[8*i:])
		}
		return res, true
	}
	return nil, false
}

func (t *Tensor) Equal(o *Tensor) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.DType == o.DType && slices.Equal(t.Shape, o.Shape) && bytes.Equal(t.Data, o.Data)
}

// String gives the dtype and shape, as in "F32[2 3]".
func (t *Tensor) String() string {
	return fmt.Sprintf("%s%v", t.DType, t.Shape)
}

type tensorJSON struct {
	DType  DType  `json:"dtype"`
	Shape  []int  `json:"shape"`
	Values any    `json:"values,omitempty"`
	Data   string `json:"data,omitempty"`
}

// MarshalJSON writes the dtype, the shape and either the decoded values
// or, for dtypes without a Go counterpart, the base64 encoded data.
func (t *Tensor) MarshalJSON() ([]byte, error) {
	res := tensorJSON{DType: t.DType, Shape: t.Shape}
	if res.Shape == nil {
		res.Shape = []int{}
	}
	if v, ok := t.elements(); ok {
		res.Values = v
	} else {
		res.Data = base64.StdEncoding.EncodeToString(t.Data)
	}
	return json.Marshal(res)
}
