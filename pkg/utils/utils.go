package utils

import (
	"runtime/debug"

	"golang-stock-advisor/pkg/logger"
)

// GoSafe runs fn in a new goroutine and recovers from panics so a single
// misbehaving task cannot bring the process down.
func GoSafe(log *logger.Logger, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("recovered from panic",
					logger.Field("panic", r),
					logger.StringField("stack", string(debug.Stack())),
				)
			}
		}()
		fn()
	}()
}
