package redis

import (
	"testing"
	"time"
)

func TestConfigOptions(t *testing.T) {
	opts := Config{Addr: "localhost:6379", DB: 2}.options()
	if opts.DialTimeout != defaultTimeout || opts.ReadTimeout != defaultTimeout || opts.WriteTimeout != defaultTimeout {
		t.Fatalf("expected default timeouts, got %+v", opts)
	}
	if opts.ClientName != clientName || opts.DB != 2 {
		t.Fatalf("unexpected options: %+v", opts)
	}

	opts = Config{Timeout: time.Second, PoolSize: 4}.options()
	if opts.DialTimeout != time.Second || opts.PoolSize != 4 {
		t.Fatalf("explicit settings ignored: %+v", opts)
	}
}
