package common

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func Interrupted() <-chan os.Signal {
	interrupt := make(chan os.Signal, 2)
	signal.Notify(interrupt,
		os.Interrupt,
		syscall.SIGTERM, syscall.SIGQUIT,
	)
	return interrupt
}

// InterruptContext is cancelled on the first interrupt signal.
func InterruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
}
