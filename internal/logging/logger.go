package logging

import (
	"io"
	"log"
	"os"
	"sync"
	"time"
)

const logFlags = log.Ldate | log.Ltime | log.Lmicroseconds

var (
	mu      sync.RWMutex
	info    = log.New(os.Stdout, "[INFO] ", logFlags)
	errLog  = log.New(os.Stderr, "[ERROR] ", logFlags)
	debug   = log.New(os.Stdout, "[DEBUG] ", logFlags)
	verbose bool
)

// Init configures the process loggers. Verbose turns on debug output in
// addition to the TODO_DEBUG switch.
func Init(out, errOut io.Writer, verboseOutput bool) {
	mu.Lock()
	defer mu.Unlock()

	info = log.New(out, "[INFO] ", logFlags)
	errLog = log.New(errOut, "[ERROR] ", logFlags)
	debug = log.New(out, "[DEBUG] ", logFlags)
	verbose = verboseOutput
}

// Info logs general information.
func Info(format string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	info.Printf(format, v...)
}

// Error logs err with a short description of what was being done.
func Error(err error, context string) {
	mu.RLock()
	defer mu.RUnlock()
	errLog.Printf("%s: %v", context, err)
}

// Debug logs only when verbose output or TODO_DEBUG is on.
func Debug(format string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose || DebugEnabled() {
		debug.Printf(format, v...)
	}
}

// Request logs one served HTTP request.
func Request(requestID, method, path, remoteAddr string, status int, duration time.Duration) {
	Info("%s %s %s %s %d %v", requestID, method, path, remoteAddr, status, duration)
}
