package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"

	"github.com/Fepozopo/shotframe/pkg/cli"
)

func main() {
	l := logrus.Default().WithLevel(logger.LevelTrace)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.Default = func() logger.Logger {
		return l
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	err := cli.Root.ExecuteContext(ctx)
	cancel()
	if err != nil {
		logger.Error(ctx, err)
		belt.Flush(ctx)
		os.Exit(1)
	}
	belt.Flush(ctx)
}
