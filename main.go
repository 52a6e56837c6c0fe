package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devents/src-server/metric"
	"devents/src-server/model"
	"devents/src-server/notify"
	"devents/src-server/route"
	"devents/src-server/utils"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	if err := godotenv.Load(); err != nil {
		slog.Info(err.Error())
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC1123Z,
		}),
	))
}

func main() {
	as := utils.NewAppState()

	db, err := as.DB(context.Background())
	if err != nil {
		slog.Error("can't connect to database", "error", err)
		os.Exit(1)
	}
	if err := model.CreateSchema(context.Background(), db); err != nil {
		slog.Error("can't create database schema", "error", err)
		os.Exit(1)
	}

	// announce new events to Discord when credentials are configured
	var notifier notify.Notifier = notify.Noop{}
	if token, channelID := as.Config.GetDiscordAppToken(), as.Config.GetDiscordChannelID(); token != "" && channelID != "" {
		discordNotifier, err := notify.NewDiscord(token, channelID)
		if err != nil {
			slog.Error("can't create Discord notifier", "error", err)
			os.Exit(1)
		}
		notifier = discordNotifier
	}

	go metric.Init(as)

	// http server
	go func() {
		muxer := http.NewServeMux()
		muxer.Handle("GET /metrics", promhttp.Handler())
		route.Event(muxer, as, notifier)
		route.Booking(muxer, as)
		if err := http.ListenAndServe(":"+as.Config.GetPort(), muxer); err != nil {
			slog.Error("cannot start HTTP server", "error", err)
			as.AppCloseSignalChan <- syscall.SIGTERM
		}
	}()

	slog.Info("app is now running, press Ctrl+C to exit", "port", as.Config.GetPort())

	signal.Notify(as.AppCloseSignalChan, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-as.AppCloseSignalChan
	as.GracefulShutdown()

	slog.Info("Gracefully shutting down...")
}
