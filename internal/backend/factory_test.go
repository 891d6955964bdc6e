package backend

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"financeiro/internal/config"
	"financeiro/internal/core"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"memory", Config{Type: MemoryBackend}, false},
		{"sqlite", Config{Type: SQLiteBackend, SQLiteDBPath: "x.db"}, false},
		{"sqlite without path", Config{Type: SQLiteBackend}, true},
		{"unknown type", Config{Type: "sheets"}, true},
		{"amqp without queue", Config{Type: MemoryBackend, AMQPURL: "amqp://localhost", AMQPExchange: "x"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.config.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Error("FromAppConfig(nil) should fail")
	}
	if _, err := FromAppConfig(&config.Config{DataBackend: "sheets"}); err == nil {
		t.Error("FromAppConfig(sheets) should fail")
	}
	cfg, err := FromAppConfig(&config.Config{DataBackend: "sqlite", SQLiteDBPath: "a.db", AMQPQueue: "q"})
	if err != nil {
		t.Fatalf("FromAppConfig() error = %v", err)
	}
	if cfg.Type != SQLiteBackend || cfg.SQLiteDBPath != "a.db" || cfg.AMQPQueue != "q" {
		t.Errorf("FromAppConfig() = %+v", cfg)
	}
	if got := GetBackendTypeStrings(); len(got) != 2 || got[0] != "memory" {
		t.Errorf("GetBackendTypeStrings() = %v", got)
	}
}

func TestCreateBackend(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	factory := NewFactory(logger)
	ctx := context.Background()

	tests := []struct {
		name   string
		config Config
	}{
		{"memory", Config{Type: MemoryBackend}},
		{"sqlite", Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(t.TempDir(), "financeiro.db")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := factory.CreateBackend(ctx, tt.config)
			if err != nil {
				t.Fatalf("CreateBackend() error = %v", err)
			}
			defer func() {
				if err := result.Cleanup(); err != nil {
					t.Errorf("Cleanup() error = %v", err)
				}
			}()

			if result.Publisher != nil {
				t.Error("Publisher should be nil without AMQP_URL")
			}
			if err := result.Backend.Ping(ctx); err != nil {
				t.Errorf("Ping() error = %v", err)
			}
			dre, err := result.Backend.IncomeStatement(ctx)
			if err != nil {
				t.Fatalf("IncomeStatement() error = %v", err)
			}
			ll, _ := dre.Line("lucro-liquido")
			if got := ll.Values.At("2024-01"); got != core.Reais(45441) {
				t.Errorf("lucro-liquido jan = %v, want %v", got, core.Reais(45441))
			}
		})
	}
}

func TestCreateBackendInvalid(t *testing.T) {
	factory := NewFactory(nil)
	if _, err := factory.CreateBackend(context.Background(), Config{Type: "sheets"}); err == nil {
		t.Error("CreateBackend(sheets) should fail")
	}
}
