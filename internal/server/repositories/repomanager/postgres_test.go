package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func stubGooseUp(t *testing.T, fn func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error) {
	t.Helper()
	orig := gooseUpContext
	gooseUpContext = fn
	t.Cleanup(func() { gooseUpContext = orig })
}

func TestNew_Drivers(t *testing.T) {
	cases := []struct {
		driver string
		want   string
	}{
		{"postgres", "pgx"},
		{"sqlite", "sqlite"},
		{"memory", ""},
	}
	for _, tc := range cases {
		m, err := New(tc.driver)
		if err != nil {
			t.Fatalf("New(%q) error: %v", tc.driver, err)
		}
		if got := m.DriverName(); got != tc.want {
			t.Fatalf("New(%q).DriverName() = %q, want %q", tc.driver, got, tc.want)
		}
	}

	if _, err := New("mysql"); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	if _, ok := NewPostgresRepositoryManager().Users(db).(*users.PostgresRepository); !ok {
		t.Fatal("postgres manager returned wrong repository")
	}
	if _, ok := NewSQLiteRepositoryManager().Users(db).(*users.SQLiteRepository); !ok {
		t.Fatal("sqlite manager returned wrong repository")
	}

	mm := NewMemoryRepositoryManager()
	if mm.Users(nil) != mm.Users(db) {
		t.Fatal("memory manager must share one repository")
	}
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	var dirs []string
	stubGooseUp(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		dirs = append(dirs, dir)
		return nil
	})

	if err := NewPostgresRepositoryManager().RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("postgres RunMigrations error: %v", err)
	}
	if err := NewSQLiteRepositoryManager().RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("sqlite RunMigrations error: %v", err)
	}
	if err := NewMemoryRepositoryManager().RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("memory RunMigrations error: %v", err)
	}

	if len(dirs) != 2 || dirs[0] != "postgres" || dirs[1] != "sqlite" {
		t.Fatalf("unexpected migration dirs %v", dirs)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	boom := errors.New("boom")
	stubGooseUp(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return boom
	})

	err := NewPostgresRepositoryManager().RunMigrations(context.Background(), db)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
