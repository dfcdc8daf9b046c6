package main

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/gatherly/event-registration/internal/config"
    "github.com/gatherly/event-registration/internal/database"
    "github.com/gatherly/event-registration/internal/handler"
    "github.com/gatherly/event-registration/internal/middleware"
    "github.com/gatherly/event-registration/internal/queue"
    "github.com/gatherly/event-registration/internal/repository"
    "github.com/gatherly/event-registration/internal/router"
    "github.com/gatherly/event-registration/internal/service"
)

func main() {
    // .env is optional; real deployments set the environment directly.
    if err := godotenv.Load(); err != nil {
        log.Printf("no .env file loaded: %v", err)
    }
    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    // Repositories and the transactional store the services run on.
    events := repository.NewEventRepo(db)
    regs := repository.NewRegistrationRepo(db)
    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)
    store := repository.NewStore(db, events, regs)

    admission := service.NewAdmission(store)
    lifecycle := service.NewLifecycle(store)

    e := echo.New()
    e.HideBanner = true
    e.Validator = handler.NewValidator()

    // Redis is optional; when it is unreachable the rate limiter and the
    // response cache are simply not installed and every request goes
    // straight through.
    var (
        limiter echo.MiddlewareFunc
        cache   echo.MiddlewareFunc
    )
    if rdb := config.NewRedisClient(); rdb != nil {
        limiter = middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
        cache = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
    }

    authH := handler.NewAuthHandler(cfg, users, tokens)
    eventH := handler.NewEventHandler(events)
    adminH := handler.NewAdminHandler(lifecycle, events, regs)
    regH := handler.NewRegistrationHandler(admission, events, regs)

    router.RegisterRoutes(e)
    router.RegisterAuth(e, authH, cfg.JWTSecret)
    router.RegisterEvents(e, eventH, cfg.JWTSecret, cache)
    router.RegisterAdmin(e, adminH, cfg.JWTSecret)
    router.RegisterRegistrations(e, regH, cfg.JWTSecret, limiter)

    // Confirmation consumer runs for the life of the process and
    // reconnects on its own; a missing broker must not block startup.
    go func() {
        if err := queue.StartRegistrationConsumer(); err != nil {
            log.Printf("registration consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
