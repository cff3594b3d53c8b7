package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/joho/godotenv"

	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/auth"
	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/catalog"
	catalogrepo "github.com/ovaphlow/pitchfork/service-reservation-go/internal/catalog/repo"
	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/housecleaning"
	hcrepo "github.com/ovaphlow/pitchfork/service-reservation-go/internal/housecleaning/repo"
	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/move"
	moverepo "github.com/ovaphlow/pitchfork/service-reservation-go/internal/move/repo"
	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/notify"
	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/router"
	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/user"
	userrepo "github.com/ovaphlow/pitchfork/service-reservation-go/internal/user/repo"
	"github.com/ovaphlow/pitchfork/service-reservation-go/pkg/database"
	"github.com/ovaphlow/pitchfork/service-reservation-go/pkg/utilities"
)

func main() {
	// best-effort: without a .env file the real environment is used
	_ = godotenv.Load()

	lg, err := utilities.Init(utilities.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting service-reservation-go")

	authCfg, err := auth.ConfigFromEnv()
	if err != nil {
		sugar.Fatalf("auth config: %v", err)
	}

	dbCfg := database.ConfigFromEnv()
	db, err := database.Connect(dbCfg)
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	smsCfg := notify.ConfigFromEnv()
	gw, closeGateway, err := notify.New(ctx, smsCfg, sugar)
	if err != nil {
		sugar.Fatalf("sms gateway: %v", err)
	}
	defer func() {
		if err := closeGateway(); err != nil {
			sugar.Warnf("sms gateway close failed: %v", err)
		}
	}()
	dispatcher := notify.NewDispatcher(gw, smsCfg.Driver, smsCfg.Timeout, sugar)

	tokens := auth.NewTokens(authCfg)
	users := user.NewUserService(userrepo.NewUserRepo(db), nil)
	refs := catalog.NewService(catalogrepo.NewOptionRepo(db))

	var handler http.Handler = router.RegisterRoutes(sugar, router.Deps{
		Auth:          auth.NewMiddleware(tokens, users, sugar),
		Users:         user.NewHandler(users, tokens, sugar),
		Catalog:       catalog.NewHandler(refs, sugar),
		Housecleaning: housecleaning.NewHandler(housecleaning.NewService(hcrepo.NewReservationRepo(db), refs, dispatcher), sugar),
		Move:          move.NewHandler(move.NewService(moverepo.NewReservationRepo(db), refs, dispatcher), sugar),
	})
	if dbCfg.Tracing {
		handler = xray.Handler(xray.NewFixedSegmentNamer("service-reservation"), handler)
	}

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8431"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sugar.Infow("http server listening", "addr", addr, "sms_driver", smsCfg.Driver, "tracing", dbCfg.Tracing)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	sugar.Info("shutting down")

	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}
