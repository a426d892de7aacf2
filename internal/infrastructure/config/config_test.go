package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "JOB_STORE", "TAX_RATE", "KAFKA_BROKER", "KAFKA_TOPIC", "DATABASE_URL", "AUTO_MIGRATE"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.JobStore != StoreDynamoDB {
		t.Fatalf("expected dynamodb store, got %q", cfg.JobStore)
	}
	if !cfg.TaxRate.IsZero() {
		t.Fatalf("expected zero tax rate, got %s", cfg.TaxRate)
	}
	if cfg.KafkaTopic != "job-events" {
		t.Fatalf("expected job-events topic, got %q", cfg.KafkaTopic)
	}
	if !cfg.AutoMigrate {
		t.Fatalf("expected auto migrate on by default")
	}
}

func TestLoad_TaxRate(t *testing.T) {
	cases := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{name: "ten percent", value: "0.1", want: "0.1"},
		{name: "zero", value: "0", want: "0"},
		{name: "not a number", value: "ten", wantErr: true},
		{name: "negative", value: "-0.05", wantErr: true},
		{name: "one", value: "1", wantErr: true},
		{name: "above one", value: "1.5", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("JOB_STORE", "memory")
			t.Setenv("TAX_RATE", tc.value)

			cfg, err := Load()
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for TAX_RATE=%q", tc.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
			if cfg.TaxRate.String() != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, cfg.TaxRate.String())
			}
		})
	}
}

func TestLoad_JobStore(t *testing.T) {
	t.Setenv("TAX_RATE", "")

	t.Run("postgres without url", func(t *testing.T) {
		t.Setenv("JOB_STORE", "postgres")
		t.Setenv("DATABASE_URL", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when DATABASE_URL is missing")
		}
	})

	t.Run("postgres with url", func(t *testing.T) {
		t.Setenv("JOB_STORE", "Postgres")
		t.Setenv("DATABASE_URL", "postgres://localhost/jobs")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if cfg.JobStore != StorePostgres {
			t.Fatalf("expected postgres store, got %q", cfg.JobStore)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		t.Setenv("JOB_STORE", "redis")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown store")
		}
	})
}
