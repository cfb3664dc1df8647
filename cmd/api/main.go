package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	httpadp "credit-approval/internal/adapter/http"
	"credit-approval/internal/adapter/middleware"
	"credit-approval/internal/adapter/repository/mysql"
	"credit-approval/internal/config"
	"credit-approval/internal/infrastructure/cache"
	"credit-approval/internal/infrastructure/db"
	"credit-approval/internal/infrastructure/lock"
	customeruc "credit-approval/internal/usecase/customer"
	"credit-approval/internal/usecase/ingestion"
	loanuc "credit-approval/internal/usecase/loan"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Printf("no .env loaded: %v", err)
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN(), db.ParseLogLevel(cfg.DBLogLevel))
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := mysql.Migrate(gdb); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer sqlDB.Close()
	checks := []httpadp.Check{{Name: "database", Ping: sqlDB.PingContext}}

	customers := mysql.NewCustomerRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)

	ctx := context.Background()
	if cfg.IngestionEnabled() {
		rep, err := ingestion.NewUsecase(customers, loans).RunFiles(ctx, cfg.CustomerDataPath, cfg.LoanDataPath)
		if err != nil {
			log.Fatalf("ingest: %v", err)
		}
		if rep.AlreadyLoaded {
			log.Printf("ingest: customers table not empty, skipping")
		}
	}

	var (
		loanOpts []loanuc.Option
		idem     echo.MiddlewareFunc
	)
	if cfg.RedisAddr != "" {
		rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer rdb.Close()
		checks = append(checks, httpadp.Check{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }})
		loanOpts = append(loanOpts, loanuc.WithLocker(lock.NewRedisLocker(rdb, cfg.LockTTL())))
		idem = middleware.IdempotencyMiddleware(rdb, cfg.IdempotencyTTL())
	} else {
		log.Printf("REDIS_ADDR not set: idempotency keys and the customer lock are disabled")
	}

	e := httpadp.NewServer(httpadp.Handlers{
		Base:      httpadp.NewHandler(checks...),
		Customers: httpadp.NewCustomerHandler(customeruc.NewUsecase(customers)),
		Loans:     httpadp.NewLoanHandler(loanuc.NewUsecase(customers, loans, mysql.NewGormUoW(gdb), loanOpts...)),
	}, idem)

	addr := ":" + cfg.AppPort
	go func() {
		log.Printf("listening on %s", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
