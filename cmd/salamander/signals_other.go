//go:build !windows

package main

import (
	"os"
	"syscall"
)

// terminationSignals are the signals runIdleLoop treats as a shutdown
// request, for development/test builds run off the target Windows
// platform.
var terminationSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
}
