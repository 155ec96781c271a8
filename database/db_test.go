package database

import (
	"strings"
	"testing"
)

func TestDSNFromEnvPrefersDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://app@db.internal:5432/quizforge")

	if got := dsnFromEnv(); got != "postgres://app@db.internal:5432/quizforge" {
		t.Errorf("got %q, want DATABASE_URL verbatim", got)
	}
}

func TestDSNFromEnvAssemblesKeywordDSN(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "quizforge_test")

	got := dsnFromEnv()
	for _, part := range []string{"host=db.internal", "dbname=quizforge_test", "sslmode="} {
		if !strings.Contains(got, part) {
			t.Errorf("dsn %q missing %q", got, part)
		}
	}
}

func TestEnvIntFallsBackOnBadValues(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"25", 25},
		{"", 50},
		{"not-a-number", 50},
		{"-1", 50},
		{"0", 50},
	}

	for _, tt := range tests {
		t.Setenv("DB_MAX_OPEN_CONNS", tt.value)
		if got := envInt("DB_MAX_OPEN_CONNS", 50); got != tt.want {
			t.Errorf("envInt(%q) = %d, want %d", tt.value, got, tt.want)
		}
	}
}
