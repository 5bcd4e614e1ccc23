package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dwikikusuma/gomarketplace/internal/cart/app"
	cartgrpc "github.com/dwikikusuma/gomarketplace/internal/cart/grpc"
	"github.com/dwikikusuma/gomarketplace/internal/cart/httpapi"
	"github.com/dwikikusuma/gomarketplace/internal/cart/infra"
	"github.com/dwikikusuma/gomarketplace/pkg/config"
	"github.com/dwikikusuma/gomarketplace/pkg/logger"
	"github.com/dwikikusuma/gomarketplace/pkg/shutdown"
	"github.com/dwikikusuma/gomarketplace/pkg/telemetry"
)

var version = "dev"

func main() {
	cfg, err := config.LoadFile(os.Getenv("CART_CONFIG"))
	log := logger.New(logger.Options{Service: "cartd", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})
	if err != nil {
		log.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		log.Error("cartd stopped with error", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("bye")
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	stopTracing, err := telemetry.Init(ctx, telemetry.Options{
		Service: "cartd",
		Env:     cfg.AppEnv,
		Version: version,
		Enabled: cfg.OtelEnabled,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := stopTracing(context.Background()); err != nil {
			log.Warn("tracer shutdown failed", slog.Any("err", err))
		}
	}()

	store, closer, err := infra.Open(ctx, cfg.Store, log)
	if err != nil {
		return fmt.Errorf("open cart store: %w", err)
	}
	defer closer.Close()

	cart := app.NewService(store, cfg.Store.Key, log)
	if err := cart.Load(ctx); err != nil {
		return err
	}
	log.Info("cart ready",
		slog.String("backend", cfg.Store.Backend),
		slog.String("key", cart.Key()),
		slog.Int("items", len(cart.Products())),
	)

	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	httpAddr := fmt.Sprintf(":%d", cfg.HTTPPort)
	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           httpapi.NewRouter(httpapi.Options{Cart: cart, Ready: store, Log: log}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	grpcAddr := fmt.Sprintf(":%d", cfg.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", grpcAddr, err)
	}
	grpcServer := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcServer, cartgrpc.NewHealthServer(store, log))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", httpAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		log.Info("grpc starting", slog.String("addr", grpcAddr))
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("grpc serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")

		if err := shutdown.Graceful(10*time.Second, httpServer.Shutdown, nil); err != nil {
			log.Error("http shutdown error", slog.Any("err", err))
		}
		err := shutdown.Graceful(10*time.Second, func(context.Context) error {
			grpcServer.GracefulStop()
			return nil
		}, grpcServer.Stop)
		if err != nil {
			log.Warn("graceful stop timeout, forcing stop")
		}
		return nil
	})

	return g.Wait()
}
