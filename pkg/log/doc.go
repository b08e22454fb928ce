// Package log provides a logging abstraction for rosim components.
//
// It defines a Logger interface that can be implemented by any logging
// library. A zerolog adapter is provided for production use and a no-op
// logger for tests.
package log
