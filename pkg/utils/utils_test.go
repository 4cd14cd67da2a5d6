package utils

import (
	"testing"
	"time"

	"golang-stock-advisor/pkg/logger"

	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

func TestGoSafe_RecoversFromPanic(t *testing.T) {
	log := newTestLogger(t)
	done := make(chan struct{})

	GoSafe(log, func() {
		defer close(done)
		panic("boom")
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("goroutine did not finish")
	}
}
