package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/treeflat/go-treeflat/debug"
)

// PatchMetadata applies patch to the metadata of the file at p and
// rewrites the file. A JSON array is taken as an RFC 6902 patch, anything
// else as an RFC 7386 merge patch. The patched metadata must still map
// strings to strings.
func PatchMetadata(p string, patch []byte) (map[string]string, error) {
	f, err := ReadFile(p)
	if err != nil {
		return nil, err
	}
	md, err := ApplyMetadataPatch(f.Metadata, patch)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	if debug.Store() {
		debug.LogAny(md)
	}
	f.Metadata = md
	if err := WriteFile(p, f); err != nil {
		return nil, err
	}
	return md, nil
}

// ApplyMetadataPatch returns md with patch applied; md is not modified.
func ApplyMetadataPatch(md map[string]string, patch []byte) (map[string]string, error) {
	if md == nil {
		md = map[string]string{}
	}
	doc, err := json.Marshal(md)
	if err != nil {
		return nil, err
	}
	var out []byte
	if trimmed := bytes.TrimSpace(patch); len(trimmed) != 0 && trimmed[0] == '[' {
		ops, err := jsonpatch.DecodePatch(trimmed)
		if err != nil {
			return nil, err
		}
		out, err = ops.Apply(doc)
		if err != nil {
			return nil, err
		}
	} else {
		out, err = jsonpatch.MergePatch(doc, patch)
		if err != nil {
			return nil, err
		}
	}
	res := map[string]string{}
	if err := json.Unmarshal(out, &res); err != nil {
		return nil, fmt.Errorf("%w: metadata must map strings to strings: %w", ErrInvalidHeader, err)
	}
	return res, nil
}
