//go:build rasterdebug

package pixel

const debugBounds = true
