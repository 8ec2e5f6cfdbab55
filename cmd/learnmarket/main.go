package main

import (
	"context"
	"errors"
	"os"

	"github.com/fsdevblog/learnmarket/internal/app"
	"github.com/fsdevblog/learnmarket/internal/config"
	"github.com/fsdevblog/learnmarket/internal/logger"
)

func main() {
	conf := config.MustLoadConfig()
	l, err := logger.New(os.Stdout, conf.LogLevel)
	if err != nil {
		panic(err)
	}

	if err = app.New(conf, l).Run(); err != nil {
		if errors.Is(err, context.Canceled) {
			l.Info("graceful shutdown")
			os.Exit(0)
		}
		l.WithError(err).Fatal("app stopped")
	}
}
