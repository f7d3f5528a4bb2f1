// Package redis provides a Redis-backed session store.
// Each key expires after a configurable idle TTL, which bounds the lifetime
// of a browser session's state on the server.
package redis

import (
	"crypto/tls"
	"strings"

	goredis "github.com/redis/go-redis/v9"
)

// ClientConfig configures the Redis connection.
type ClientConfig struct {
	// URL is either a redis:// URL or a connection string of the form
	// "host:port,password=secret,ssl=true".
	URL string

	// Password overrides any password in URL when set.
	Password string

	// DB selects the logical database.
	DB int
}

// NewClient creates a Redis client from cfg. The connection is established
// lazily on first use.
func NewClient(cfg ClientConfig) *goredis.Client {
	opts := parseConnection(cfg.URL)

	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}

	return goredis.NewClient(opts)
}

func parseConnection(conn string) *goredis.Options {
	if opts, err := goredis.ParseURL(conn); err == nil {
		return opts
	}

	parts := strings.Split(conn, ",")
	opts := &goredis.Options{Addr: strings.TrimSpace(parts[0])}

	for _, p := range parts[1:] {
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		switch strings.ToLower(strings.TrimSpace(kv[0])) {
		case "password":
			opts.Password = kv[1]
		case "ssl":
			if strings.EqualFold(kv[1], "true") {
				opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
			}
		}
	}

	return opts
}
