package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/campusworks/campusmarket/config"
	"github.com/campusworks/campusmarket/internal/adminapi"
	"github.com/campusworks/campusmarket/internal/app"
	"github.com/campusworks/campusmarket/internal/notify"
	"github.com/campusworks/campusmarket/internal/webapi"
	"github.com/campusworks/campusmarket/internal/webserver"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	confFile = flag.String("c", "/etc/campusmarket.yml", "config file")
	initDb   = flag.Bool("initdb", false, "drop and rebuild the database schema, then exit")
	showVer  = flag.Bool("v", false, "print version and exit")
)

var version = "dev"

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println(version)
		os.Exit(0)
	}

	cfg := config.LoadConfig(*confFile)
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initDb {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	webserver.Init(application)
	webapi.InitRoutes()
	adminapi.InitRoutes()
	notify.Init(application)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application.StartSchedulerService(ctx)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return webserver.Instance().Start(ctx)
	})

	if err := g.Wait(); err != nil {
		zap.S().Errorf("server stopped: %s", err)
	}
}
