package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/maheshrc27/marketeer/internal/models"
)

const testTweetID = "5c6cf4a4-9207-4f0f-8e35-0d67a7e0e3b6"

func TestTweetUpdateScopedToOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := NewTweetRepository(db)

	// a different user id matches zero rows
	mock.ExpectExec("UPDATE tweets").
		WithArgs(models.TweetStatusPosted, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), testTweetID, int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.Update(context.Background(), testTweetID, 99, &TweetUpdateFields{
		Status:     models.TweetStatusPosted,
		ExternalID: sql.NullString{String: "190", Valid: true},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if affected != 0 {
		t.Errorf("affected = %d, want 0", affected)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestTweetSetPosted(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := NewTweetRepository(db)

	mock.ExpectExec("UPDATE tweets").
		WithArgs(models.TweetStatusPosted, "190", sqlmock.AnyArg(), testTweetID, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.SetPosted(context.Background(), testTweetID, 1, "190")
	if err != nil {
		t.Fatalf("SetPosted: %v", err)
	}
	if affected != 1 {
		t.Errorf("affected = %d, want 1", affected)
	}
}

func TestTweetSetScheduled(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := NewTweetRepository(db)
	when := time.Now().Add(time.Hour)

	mock.ExpectExec("UPDATE tweets").
		WithArgs(models.TweetStatusScheduled, when, sqlmock.AnyArg(), testTweetID, int64(1), models.TweetStatusPosted).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.SetScheduled(context.Background(), testTweetID, 1, when)
	if err != nil {
		t.Fatalf("SetScheduled: %v", err)
	}
	if affected != 1 {
		t.Errorf("affected = %d, want 1", affected)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestTweetSetScheduledSkipsPostedRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := NewTweetRepository(db)
	when := time.Now().Add(time.Hour)

	// the status guard matches zero rows for a posted tweet
	mock.ExpectExec("UPDATE tweets").
		WithArgs(models.TweetStatusScheduled, when, sqlmock.AnyArg(), testTweetID, int64(1), models.TweetStatusPosted).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.SetScheduled(context.Background(), testTweetID, 1, when)
	if err != nil {
		t.Fatalf("SetScheduled: %v", err)
	}
	if affected != 0 {
		t.Errorf("affected = %d, want 0", affected)
	}
}

func TestTweetGetByIDMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := NewTweetRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM tweets").
		WithArgs(testTweetID).
		WillReturnError(sql.ErrNoRows)

	tweet, err := repo.GetByID(context.Background(), testTweetID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if tweet != nil {
		t.Errorf("tweet = %+v, want nil", tweet)
	}
}

func TestTweetGetByUserIDScansCounters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := NewTweetRepository(db)
	now := time.Now()

	cols := []string{"id", "user_id", "content", "status", "product_name", "external_id", "likes", "replies", "retweets", "scheduled_time", "created_at", "updated_at"}
	mock.ExpectQuery("SELECT (.+) FROM tweets").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(testTweetID, int64(1), "posted one", models.TweetStatusPosted, "Marketeer", "190", 12, 3, 4, nil, now, now).
			AddRow("another-id", int64(1), "generated one", models.TweetStatusGenerated, "Marketeer", nil, 0, 0, 0, nil, now, now))

	tweets, err := repo.GetByUserID(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if len(tweets) != 2 {
		t.Fatalf("got %d tweets", len(tweets))
	}
	if tweets[0].Likes != 12 || !tweets[0].ExternalID.Valid {
		t.Errorf("tweets[0] = %+v", tweets[0])
	}
	if tweets[1].ExternalID.Valid {
		t.Error("generated row should have no external id")
	}
}
