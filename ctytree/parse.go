package ctytree

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// ParseFile reads the top-level attributes of an HCL file, or of an HCL
// JSON file if the name ends in ".json", into an object value.
func ParseFile(p string) (cty.Value, error) {
	parser := hclparse.NewParser()
	var (
		file  *hcl.File
		diags hcl.Diagnostics
	)
	if strings.EqualFold(filepath.Ext(p), ".json") {
		file, diags = parser.ParseJSONFile(p)
	} else {
		file, diags = parser.ParseHCLFile(p)
	}
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("failed to parse HCL file %s: %w", p, diags)
	}
	return attributes(p, file)
}

// Parse is ParseFile for HCL native syntax held in memory.
func Parse(src []byte, filename string) (cty.Value, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return attributes(filename, file)
}

func attributes(p string, file *hcl.File) (cty.Value, error) {
	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("failed to decode HCL file %s: %w", p, diags)
	}
	vals := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		v, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return cty.NilVal, fmt.Errorf("failed to evaluate %s in %s: %w", name, p, diags)
		}
		vals[name] = v
	}
	return cty.ObjectVal(vals), nil
}
