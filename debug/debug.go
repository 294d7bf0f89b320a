package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Build  bool
	Merge  bool
	Store  bool
	Filter bool
}

var d *debug

func init() {
	d = &debug{}
	d.Build = boolEnv("TREEFLAT_DEBUG_BUILD")
	d.Merge = boolEnv("TREEFLAT_DEBUG_MERGE")
	d.Store = boolEnv("TREEFLAT_DEBUG_STORE")
	d.Filter = boolEnv("TREEFLAT_DEBUG_FILTER")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Build() bool {
	return d.Build
}
func Merge() bool {
	return d.Merge
}
func Store() bool {
	return d.Store
}
func Filter() bool {
	return d.Filter
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
	os.Stderr.Write([]byte{'\n'})
}
