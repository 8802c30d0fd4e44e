package repositories

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"ridereport/internal/domain"
	"ridereport/internal/domain/models"
)

func newMockRepo(t *testing.T) (RideSessionRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	return RideSessionRepository{DB: db}, mock, func() { db.Close() }
}

func TestSaveRidesReplacesSessionInOrder(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	rides := []models.EnrichedRide{
		{ID: "t1", Amount: 84.38, Currency: "INR"},
		{ID: "t2", Amount: 120.00, Currency: "INR"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM ride_sessions").WithArgs("s1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO ride_sessions").
		WithArgs("s1", "t1", 0, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO ride_sessions").
		WithArgs("s1", "t2", 1, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	if err := repo.SaveRides("s1", rides); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSaveRidesRollsBackOnInsertFailure(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM ride_sessions").WithArgs("s1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO ride_sessions").
		WillReturnError(errors.New("duplicate entry"))
	mock.ExpectRollback()

	err := repo.SaveRides("s1", []models.EnrichedRide{{ID: "t1"}})
	if !domain.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListRidesDecodesPayloadsInPosition(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	p1, _ := json.Marshal(models.EnrichedRide{ID: "t1", Amount: 84.38})
	p2, _ := json.Marshal(models.EnrichedRide{ID: "t2", Amount: 120.00})
	mock.ExpectQuery("SELECT payload FROM ride_sessions").WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(p1).AddRow(p2))

	rides, err := repo.ListRides("s1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(rides) != 2 || rides[0].ID != "t1" || rides[1].ID != "t2" {
		t.Fatalf("rides decoded out of order: %+v", rides)
	}
	if rides[1].Amount != 120.00 {
		t.Fatalf("payload fields lost, got %+v", rides[1])
	}
}

func TestListRidesUnknownSession(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery("SELECT payload FROM ride_sessions").WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))

	_, err := repo.ListRides("nope")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpsertAmountEdit(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectExec("INSERT INTO ride_amount_edits").
		WithArgs("s1", "t1", 100.0, 84.38, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.UpsertAmountEdit("s1", models.AmountEdit{RideID: "t1", Amount: 100, OriginalAmount: 84.38})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteAmountEditMissingEntry(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectExec("DELETE FROM ride_amount_edits").WithArgs("s1", "t9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteAmountEdit("s1", "t9")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteAmountEditRowsAffectedFailure(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectExec("DELETE FROM ride_amount_edits").WithArgs("s1", "t1").
		WillReturnResult(sqlmock.NewErrorResult(errors.New("rows affected unsupported")))

	err := repo.DeleteAmountEdit("s1", "t1")
	if !domain.IsInternal(err) {
		t.Fatalf("a failed row count must not report a clean revert, got %v", err)
	}
}

func TestListAmountEditsKeyedByRide(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery("SELECT ride_id, amount, original_amount FROM ride_amount_edits").
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"ride_id", "amount", "original_amount"}).
			AddRow("t1", 100.0, 84.38))

	edits, err := repo.ListAmountEdits("s1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	edit, ok := edits["t1"]
	if !ok || edit.Amount != 100.0 || edit.OriginalAmount != 84.38 {
		t.Fatalf("edit not keyed by ride id: %+v", edits)
	}
}

func TestPurgeOlderThanSweepsEditsFirst(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectExec("DELETE FROM ride_amount_edits").WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM ride_sessions").WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	if err := repo.PurgeOlderThan(12 * time.Hour); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
