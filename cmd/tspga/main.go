package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"k8s.io/klog/v2"

	"github.com/worldtour/tspga/cmd/tspga/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := 0
	if err := app.NewCommand().ExecuteContext(ctx); err != nil {
		code = 1
	}
	stop()
	klog.Flush()
	os.Exit(code)
}
