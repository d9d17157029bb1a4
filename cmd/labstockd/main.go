// Command labstockd runs the in-memory development backend under /api.
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/labstock-id/labstock/internal/config"
	"github.com/labstock-id/labstock/internal/devserver"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("labstockd: %v", err)
	}

	var revoked devserver.TokenStore
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("could not connect to redis: %v", err)
		}
		defer rdb.Close()
		revoked = devserver.NewRedisTokenStore(rdb)
		log.Printf("token revocation backed by redis at %s", cfg.RedisAddr)
	}

	srv := devserver.New(cfg.JWTSecret, revoked)

	r := chi.NewRouter()
	r.Mount("/api", srv.Handler())

	log.Printf("labstockd listening on %s", cfg.ServerAddr)
	if err := http.ListenAndServe(cfg.ServerAddr, r); err != nil {
		log.Fatal(err)
	}
}
