package server_test

import (
	"testing"
	"time"

	"github.com/kariua-parish/parish-site/internal/common/constants"
	"github.com/kariua-parish/parish-site/internal/common/server"
)

func TestDefaultServerConfig_WriteTimeoutCoversHandlers(t *testing.T) {
	cfg := server.DefaultServerConfig("5000")
	if cfg.Addr != ":5000" {
		t.Errorf("expected :5000, got %s", cfg.Addr)
	}
	if cfg.WriteTimeout != constants.ServerWriteTimeout {
		t.Errorf("expected default write timeout, got %v", cfg.WriteTimeout)
	}

	cfg = server.DefaultServerConfig("5000", 30*time.Second, 3*time.Minute)
	if cfg.WriteTimeout <= 3*time.Minute {
		t.Errorf("expected write timeout above the chat deadline, got %v", cfg.WriteTimeout)
	}
}
