package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestUserUpsertReturnsSameIDOnRepeatSignIn(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := NewUserRepository(db)

	for i := 0; i < 2; i++ {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("builder", "https://example.com/a.png").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	}

	first, err := repo.Upsert(context.Background(), "builder", "https://example.com/a.png")
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	second, err := repo.Upsert(context.Background(), "builder", "https://example.com/a.png")
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if first != second {
		t.Errorf("ids differ: %d vs %d", first, second)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUserGetByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := NewUserRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT id, username, avatar_url").
		WithArgs("builder").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "avatar_url", "created_at", "updated_at"}).
			AddRow(int64(7), "builder", "https://example.com/a.png", now, now))

	user, isExist, err := repo.GetByUsername(context.Background(), "builder")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if !isExist {
		t.Fatal("expected user to exist")
	}
	if user.ID != 7 || user.Username != "builder" {
		t.Errorf("user = %+v", user)
	}
}

func TestUserGetByUsernameMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT id, username, avatar_url").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "avatar_url", "created_at", "updated_at"}))

	user, isExist, err := repo.GetByUsername(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if isExist || user != nil {
		t.Errorf("user = %+v, isExist = %v, want absent", user, isExist)
	}
}
