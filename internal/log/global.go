package log

import (
	"sync"
)

var global struct {
	mu     sync.RWMutex
	logger *Logger
}

// SetDefaultLogger replaces the process-wide logger. The CLI calls this once
// after flags and config are read; anything that grabbed the logger earlier
// keeps the instance it has.
func SetDefaultLogger(logger *Logger) {
	global.mu.Lock()
	global.logger = logger
	global.mu.Unlock()
}

// DefaultLogger returns the process-wide logger, creating one from
// DefaultConfig on first use.
func DefaultLogger() *Logger {
	global.mu.RLock()
	logger := global.logger
	global.mu.RUnlock()

	if logger != nil {
		return logger
	}

	logger = Default()
	SetDefaultLogger(logger)
	return logger
}
