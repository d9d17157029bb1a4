package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every knob the client and the dev server read. Values come
// from an optional labstock.yaml (in . or ~/.labstock) overridden by
// LABSTOCK_* environment variables.
type Config struct {
	// APIURL is the base URL of the inventory backend.
	APIURL string
	// TokenFile is where the session token is persisted.
	TokenFile string
	// HTTPTimeout bounds every request issued by the API client.
	HTTPTimeout time.Duration

	// ServerAddr is the dev server listen address.
	ServerAddr string
	// JWTSecret signs dev server tokens.
	JWTSecret string
	// RedisAddr, when set, backs the dev server's revoked-token store
	// with redis instead of process memory.
	RedisAddr string
}

func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LABSTOCK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api.url", "http://localhost:3000/api")
	v.SetDefault("token.file", defaultTokenFile())
	v.SetDefault("http.timeout", "10s")
	v.SetDefault("server.addr", ":3000")
	v.SetDefault("server.jwt_secret", "labstock-dev-secret")
	v.SetDefault("server.redis_addr", "")

	v.SetConfigName("labstock")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.labstock")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	return Config{
		APIURL:      v.GetString("api.url"),
		TokenFile:   v.GetString("token.file"),
		HTTPTimeout: v.GetDuration("http.timeout"),
		ServerAddr:  v.GetString("server.addr"),
		JWTSecret:   v.GetString("server.jwt_secret"),
		RedisAddr:   v.GetString("server.redis_addr"),
	}, nil
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".labstock", "token.json")
	}
	return filepath.Join(home, ".labstock", "token.json")
}
