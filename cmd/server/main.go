package main

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"tasktrack"
	fiberadapter "tasktrack/adapters/fiber"
	pgxadapter "tasktrack/adapters/pgx"
	"tasktrack/config"
	"tasktrack/crypto"
	"tasktrack/migrations"
)

func logFormat() string {
	format := []string{
		"${time}|${requestid}",
		"${status}|${latency}",
		"${ip}:${port}",
		"${method}|${path}",
		"${errors}",
	}
	return strings.Join(format, "|") + "\n"
}

func runMigrations(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)
	return goose.UpContext(ctx, db, ".")
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config.Load: %v", err)
	}

	if err := runMigrations(ctx, cfg.DatabaseDSN); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("pgxpool.New: %v", err)
	}
	defer pool.Close()

	app, err := tasktrack.New(tasktrack.Config{
		Secret:      cfg.Secret,
		Storage:     pgxadapter.New(pool),
		Issuer:      cfg.TokenIssuer,
		TokenTTL:    cfg.TokenTTL,
		RegistryTTL: cfg.RegistryTTL,
		Argon2: &crypto.Argon2Params{
			Memory:      uint32(cfg.ArgonMemoryKiB),
			Iterations:  uint32(cfg.ArgonIterations),
			Parallelism: uint8(cfg.ArgonParallelism),
			SaltLength:  16,
			KeyLength:   32,
		},
	})
	if err != nil {
		log.Fatalf("could not create tasktrack instance: %v", err)
	}

	srv := fiber.New()

	srv.Use(requestid.New())
	srv.Use(logger.New(logger.Config{
		Format:     logFormat(),
		TimeFormat: "2006/01/02 15:04:05",
		TimeZone:   "Local",
	}))
	srv.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}))

	if err := fiberadapter.New(srv).RegisterRoutes(app); err != nil {
		log.Fatalf("could not register routes: %v", err)
	}

	// Front-end assets; everything outside /api/ passes the gate untouched.
	srv.Use("/", static.New(cfg.StaticDir))

	if err := srv.Listen(cfg.Addr); err != nil {
		log.Fatalf("srv.Listen: %v", err)
	}
}
