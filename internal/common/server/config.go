package server

import (
	"net/http"
	"time"

	"github.com/kariua-parish/parish-site/internal/common/constants"
)

// writeTimeoutMargin leaves room to encode the response after the slowest
// handler deadline fires.
const writeTimeoutMargin = 5 * time.Second

type ServerConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
}

// DefaultServerConfig derives the write timeout from the longest handler
// deadline so a slow chat completion is never cut off mid-response.
func DefaultServerConfig(port string, handlerTimeouts ...time.Duration) ServerConfig {
	writeTimeout := constants.ServerWriteTimeout
	for _, d := range handlerTimeouts {
		if d+writeTimeoutMargin > writeTimeout {
			writeTimeout = d + writeTimeoutMargin
		}
	}

	return ServerConfig{
		Addr:              ":" + port,
		ReadHeaderTimeout: constants.ServerReadHeaderTimeout,
		ReadTimeout:       constants.ServerReadTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       constants.ServerIdleTimeout,
	}
}

func NewServer(cfg ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}
