package weft

import "fmt"

// DebugMode enables debug logging throughout the package. Set it at startup
// and do not change it during runtime.
var DebugMode bool

func debugf(format string, args ...any) {
	if DebugMode {
		fmt.Printf("[weft] "+format+"\n", args...)
	}
}
