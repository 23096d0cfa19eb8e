package expenses

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/spendtrack/spendtrack/internal/common"
	"github.com/spendtrack/spendtrack/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func sampleExpense(now time.Time) *models.Expense {
	return &models.Expense{
		ID:          "e1",
		UserID:      "u1",
		Merchant:    "Corner Cafe",
		Description: "lunch",
		AmountCents: 1250,
		Category:    models.CategoryDining,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func expenseColumns() []string {
	return []string{"id", "user_id", "merchant", "description", "amount_cents", "category", "other_category_name", "created_at", "updated_at"}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+expenses\b.*RETURNING\s+id\s*$`

	now := time.Now().UTC()
	expense := sampleExpense(now)

	mock.ExpectQuery(q).
		WithArgs("e1", "u1", "Corner Cafe", "lunch", int64(1250), models.CategoryDining, "", now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("e1"))

	got, err := repo.Create(context.Background(), expense)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "e1" {
		t.Fatalf("unexpected id: %q", got.ID)
	}
}

func TestListByUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+.*FROM\s+expenses\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+updated_at\s+DESC\s*$`

	now := time.Now().UTC()
	rows := sqlmock.NewRows(expenseColumns()).
		AddRow("e2", "u1", "Grocer", "weekly shop", int64(5400), models.CategoryGroceries, "", now, now).
		AddRow("e1", "u1", "Corner Cafe", "lunch", int64(1250), models.CategoryDining, "", now.Add(-time.Hour), now.Add(-time.Hour))

	mock.ExpectQuery(q).
		WithArgs("u1").
		WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), "u1", ListWindow{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "e2" || got[1].ID != "e1" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestListByUser_FromBound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+.*FROM\s+expenses\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+created_at\s*>=\s*\$2\s+ORDER\s+BY\s+updated_at\s+DESC\s*$`

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -7)
	rows := sqlmock.NewRows(expenseColumns()).
		AddRow("e1", "u1", "Corner Cafe", "lunch", int64(1250), models.CategoryDining, "", now, now)

	mock.ExpectQuery(q).
		WithArgs("u1", from).
		WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), "u1", ListWindow{From: from})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "e1" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestListByUser_FullWindow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+.*FROM\s+expenses\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+created_at\s*>=\s*\$2\s+AND\s+created_at\s*<=\s*\$3\s+ORDER\s+BY\s+updated_at\s+DESC\s*$`

	now := time.Now().UTC()
	from := now.AddDate(0, -1, 0)

	mock.ExpectQuery(q).
		WithArgs("u1", from, now).
		WillReturnRows(sqlmock.NewRows(expenseColumns()))

	got, err := repo.ListByUser(context.Background(), "u1", ListWindow{From: from, To: now})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestListByUser_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+.*FROM\s+expenses\s+WHERE\s+user_id\b`

	mock.ExpectQuery(q).
		WillReturnRows(sqlmock.NewRows(expenseColumns()))

	got, err := repo.ListByUser(context.Background(), "u1", ListWindow{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+.*FROM\s+expenses\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s*$`

	mock.ExpectQuery(q).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "u1", "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestUpdate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+expenses\s+SET\b.*WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s*$`

	mock.ExpectExec(q).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Update(context.Background(), sampleExpense(time.Now().UTC())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+expenses\s+SET\b`

	mock.ExpectExec(q).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), sampleExpense(time.Now().UTC()))
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+expenses\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s*$`

	mock.ExpectExec(q).
		WithArgs("e1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "u1", "e1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+expenses\b`

	mock.ExpectExec(q).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "u1", "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+expenses\b`

	mock.ExpectQuery(q).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), sampleExpense(time.Now().UTC()))
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
