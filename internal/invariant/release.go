//go:build !debug

package invariant

// Hold is a no-op outside a debug build.
func Hold(cond bool, msg string) {}
