package salamander

import "os"

// DebugEnabled controls whether verbose debug logging is active across the
// engine. It is set automatically from the SALAMANDER_DEBUG environment
// variable so that it can be flipped without rebuilding.
var DebugEnabled bool

func init() {
	DebugEnabled = os.Getenv("SALAMANDER_DEBUG") == "1"
}
