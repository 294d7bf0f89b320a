package store

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

const (
	metadataKey = "__metadata__"

	// maxHeaderSize bounds the header length read from a file.
	maxHeaderSize = 100 << 20
)

// Entry is one named tensor of a file.
type Entry struct {
	Key    string
	Tensor *Tensor
}

// File is the decoded content of a safetensors file. Entries are in data
// order, which is the order they were written in.
type File struct {
	Metadata map[string]string
	Entries  []Entry
}

// Get returns the tensor stored under key, or nil.
func (f *File) Get(key string) *Tensor {
	for i := range f.Entries {
		if f.Entries[i].Key == key {
			return f.Entries[i].Tensor
		}
	}
	return nil
}

type headerEntry struct {
	DType   DType  `json:"dtype"`
	Shape   []int  `json:"shape"`
	Offsets [2]int `json:"data_offsets"`
}

func ReadFile(p string) (*File, error) {
	d, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	res, err := Decode(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	return res, nil
}

// Decode parses the bytes of a safetensors file. The returned tensors
// share memory with d.
func Decode(d []byte) (*File, error) {
	if len(d) < 8 {
		return nil, fmt.Errorf("%w: file too short", ErrInvalidHeader)
	}
	n := binary.LittleEndian.Uint64(d)
	if n > maxHeaderSize || n > uint64(len(d)-8) {
		return nil, fmt.Errorf("%w: header size %d out of range", ErrInvalidHeader, n)
	}
	hdr, data := d[8:8+n], d[8+n:]

	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(hdr, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}
	res := &File{}
	if md, ok := raw[metadataKey]; ok {
		if err := json.Unmarshal(md, &res.Metadata); err != nil {
			return nil, fmt.Errorf("%w: metadata: %w", ErrInvalidHeader, err)
		}
		delete(raw, metadataKey)
	}
	type located struct {
		key string
		he  headerEntry
	}
	entries := make([]located, 0, len(raw))
	for k, v := range raw {
		var he headerEntry
		if err := json.Unmarshal(v, &he); err != nil {
			return nil, fmt.Errorf("%w: key %q: %w", ErrInvalidHeader, k, err)
		}
		entries = append(entries, located{k, he})
	}
	slices.SortFunc(entries, func(a, b located) int {
		return cmp.Or(
			cmp.Compare(a.he.Offsets[0], b.he.Offsets[0]),
			cmp.Compare(a.he.Offsets[1], b.he.Offsets[1]),
			strings.Compare(a.key, b.key),
		)
	})
	off := 0
	res.Entries = make([]Entry, len(entries))
	for i, e := range entries {
		begin, end := e.he.Offsets[0], e.he.Offsets[1]
		if begin != off || end < begin || end > len(data) {
			return nil, fmt.Errorf("%w: key %q: offsets [%d, %d) not contiguous", ErrInvalidHeader, e.key, begin, end)
		}
		t := &Tensor{DType: e.he.DType, Shape: e.he.Shape, Data: data[begin:end:end]}
		if t.Shape == nil {
			t.Shape = []int{}
		}
		if err := t.check(); err != nil {
			return nil, fmt.Errorf("key %q: %w", e.key, err)
		}
		res.Entries[i] = Entry{Key: e.key, Tensor: t}
		off = end
	}
	if off != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes after data", ErrInvalidHeader, len(data)-off)
	}
	return res, nil
}

// WriteFile writes f to p.tmp and then renames it to p.
func WriteFile(p string, f *File) error {
	buf := bytes.NewBuffer(nil)
	if err := f.Encode(buf); err != nil {
		return err
	}
	tmpFile := p + ".tmp"
	if err := os.WriteFile(tmpFile, buf.Bytes(), 0644); err != nil {
		return err
	}
	if err := os.Rename(tmpFile, p); err != nil {
		os.Remove(tmpFile)
		return err
	}
	return nil
}

// Encode writes f in the safetensors layout. Keys must be unique and must
// not be "__metadata__".
func (f *File) Encode(w io.Writer) error {
	hdr := make(map[string]any, len(f.Entries)+1)
	if len(f.Metadata) != 0 {
		hdr[metadataKey] = f.Metadata
	}
	off := 0
	for _, e := range f.Entries {
		if e.Key == metadataKey {
			return fmt.Errorf("%w: reserved key %q", ErrInvalidHeader, e.Key)
		}
		if _, dup := hdr[e.Key]; dup {
			return fmt.Errorf("%w: duplicate key %q", ErrInvalidHeader, e.Key)
		}
		if e.Tensor == nil {
			return fmt.Errorf("key %q: %w", e.Key, ErrNotTensor)
		}
		if err := e.Tensor.check(); err != nil {
			return fmt.Errorf("key %q: %w", e.Key, err)
		}
		shape := e.Tensor.Shape
		if shape == nil {
			shape = []int{}
		}
		n := len(e.Tensor.Data)
		hdr[e.Key] = headerEntry{DType: e.Tensor.DType, Shape: shape, Offsets: [2]int{off, off + n}}
		off += n
	}
	d, err := json.Marshal(hdr)
	if err != nil {
		return err
	}
	if pad := len(d) % 8; pad != 0 {
		d = append(d, bytes.Repeat([]byte{' '}, 8-pad)...)
	}
	var size [8]byte
	binary.LittleEndian.PutUint64(size[:], uint64(len(d)))
	if _, err := w.Write(size[:]); err != nil {
		return err
	}
	if _, err := w.Write(d); err != nil {
		return err
	}
	for _, e := range f.Entries {
		if _, err := w.Write(e.Tensor.Data); err != nil {
			return err
		}
	}
	return nil
}
