package store

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleFile() *File {
	return &File{
		Metadata: map[string]string{"format": "pt"},
		Entries: []Entry{
			{Key: "w", Tensor: NewF32([]float32{1, 2, 3, 4}, 2, 2)},
			{Key: "layers#0.bias", Tensor: NewF64([]float64{0.25})},
			{Key: "empty", Tensor: NewF32(nil, 0)},
			{Key: "heads@q", Tensor: NewI64([]int64{9})},
		},
	}
}

func TestFileRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "m.safetensors")
	require.NoError(t, WriteFile(p, sampleFile()))

	_, err := os.Stat(p + ".tmp")
	require.True(t, os.IsNotExist(err))

	got, err := ReadFile(p)
	require.NoError(t, err)
	want := sampleFile()
	require.Equal(t, want.Metadata, got.Metadata)
	require.Len(t, got.Entries, len(want.Entries))
	for i := range want.Entries {
		require.Equal(t, want.Entries[i].Key, got.Entries[i].Key)
		require.True(t, want.Entries[i].Tensor.Equal(got.Entries[i].Tensor), "key %s: %s vs %s", want.Entries[i].Key, want.Entries[i].Tensor, got.Entries[i].Tensor)
	}
	require.True(t, got.Get("w").Equal(want.Get("w")))
	require.Nil(t, got.Get("missing"))
}

func TestEncodeLayout(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	require.NoError(t, sampleFile().Encode(buf))
	d := buf.Bytes()
	n := binary.LittleEndian.Uint64(d)
	require.Zero(t, n%8)
	require.Equal(t, 16+8+0+8, len(d)-8-int(n))
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name string
		f    *File
	}{
		{"duplicate", &File{Entries: []Entry{{"a", NewI64([]int64{1})}, {"a", NewI64([]int64{2})}}}},
		{"reserved", &File{Entries: []Entry{{metadataKey, NewI64([]int64{1})}}}},
		{"short data", &File{Entries: []Entry{{"a", &Tensor{DType: F32, Shape: []int{2}, Data: make([]byte, 4)}}}}},
		{"bad dtype", &File{Entries: []Entry{{"a", &Tensor{DType: "F128", Shape: []int{}, Data: nil}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.f.Encode(bytes.NewBuffer(nil)), ErrInvalidHeader)
		})
	}
}

func rawFile(hdr string, data []byte) []byte {
	var size [8]byte
	binary.LittleEndian.PutUint64(size[:], uint64(len(hdr)))
	res := append(size[:], hdr...)
	return append(res, data...)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		d    []byte
	}{
		{"too short", []byte{1, 2}},
		{"header overruns", rawFile(`{}`, nil)[:9]},
		{"not json", rawFile(`{`, nil)},
		{"unknown dtype", rawFile(`{"a":{"dtype":"Q4","shape":[1],"data_offsets":[0,1]}}`, []byte{0})},
		{"size mismatch", rawFile(`{"a":{"dtype":"F32","shape":[2],"data_offsets":[0,4]}}`, make([]byte, 4))},
		{"gap", rawFile(`{"a":{"dtype":"U8","shape":[1],"data_offsets":[1,2]}}`, make([]byte, 2))},
		{"overlap", rawFile(`{"a":{"dtype":"U8","shape":[2],"data_offsets":[0,2]},"b":{"dtype":"U8","shape":[1],"data_offsets":[1,2]}}`, make([]byte, 2))},
		{"trailing", rawFile(`{"a":{"dtype":"U8","shape":[1],"data_offsets":[0,1]}}`, make([]byte, 3))},
		{"shape overflows", rawFile(`{"a":{"dtype":"U8","shape":[4294967296,4294967296],"data_offsets":[0,0]}}`, nil)},
		{"bytes overflow", rawFile(`{"a":{"dtype":"F32","shape":[2305843009213693952],"data_offsets":[0,0]}}`, nil)},
		{"bad metadata", rawFile(`{"__metadata__":{"a":1}}`, nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.d)
			require.ErrorIs(t, err, ErrInvalidHeader)
		})
	}
}

func TestDecodeOffsetOrder(t *testing.T) {
	d := rawFile(`{"z":{"dtype":"U8","shape":[1],"data_offsets":[0,1]},"a":{"dtype":"U8","shape":[1],"data_offsets":[1,2]}}`, []byte{7, 8})
	f, err := Decode(d)
	require.NoError(t, err)
	require.Equal(t, "z", f.Entries[0].Key)
	require.Equal(t, "a", f.Entries[1].Key)
	require.Equal(t, []byte{8}, f.Get("a").Data)
}

func TestDecodeEmptyDimension(t *testing.T) {
	f, err := Decode(rawFile(`{"a":{"dtype":"F64","shape":[0,4294967296],"data_offsets":[0,0]}}`, nil))
	require.NoError(t, err)
	require.Equal(t, 0, f.Entries[0].Tensor.NumElements())
}
