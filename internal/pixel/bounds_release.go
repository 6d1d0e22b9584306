//go:build !rasterdebug

package pixel

// debugBounds makes out-of-range accesses panic. Enabled with -tags rasterdebug.
const debugBounds = false
