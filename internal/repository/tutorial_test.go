package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/deppfellow/tutorial-api/internal/model"
	"github.com/deppfellow/tutorial-api/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
)

var tutorialColumns = []string{"id", "title", "description", "is_published"}

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, TutorialRepository) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
		mock.Close()
	})

	return mock, NewTutorialRepository(mock)
}

func TestTutorialRepositoryFindAll(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`SELECT id, title, description, is_published\s+FROM\s+tutorials\s+ORDER\s+BY id`).
		WillReturnRows(pgxmock.NewRows(tutorialColumns).
			AddRow(int64(1), "Go Basics", "intro", false).
			AddRow(int64(2), "Advanced Go", "deep dive", true))

	tutorials, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(tutorials) != 2 {
		t.Fatalf("len: want=2 got=%d", len(tutorials))
	}
	want := model.Tutorial{ID: 2, Title: "Advanced Go", Description: "deep dive", IsPublished: true}
	if tutorials[1] != want {
		t.Fatalf("second row: want=%+v got=%+v", want, tutorials[1])
	}
}

func TestTutorialRepositoryFindAllEmpty(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`FROM\s+tutorials\s+ORDER\s+BY id`).
		WillReturnRows(pgxmock.NewRows(tutorialColumns))

	tutorials, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(tutorials) != 0 {
		t.Fatalf("len: want=0 got=%d", len(tutorials))
	}
}

func TestTutorialRepositoryFindByID(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`WHERE\s+id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(tutorialColumns).AddRow(int64(7), "Go", "", true))

	tutorial, err := repo.FindByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if tutorial.ID != 7 || !tutorial.IsPublished {
		t.Fatalf("tutorial: got=%+v", tutorial)
	}
}

func TestTutorialRepositoryFindByIDMissing(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`WHERE\s+id = \$1`).
		WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows(tutorialColumns))

	_, err := repo.FindByID(context.Background(), 99)
	if !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("error: want pgx.ErrNoRows got=%v", err)
	}
	if !strings.Contains(err.Error(), sqlerr.TablePrefix+"tutorials:") {
		t.Fatalf("error should name the table, got=%q", err.Error())
	}
}

func TestTutorialRepositoryFindByTitleContainingEscapesWildcards(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`WHERE\s+title ILIKE \$1`).
		WithArgs(`%100\%\_go%`).
		WillReturnRows(pgxmock.NewRows(tutorialColumns).AddRow(int64(3), "100%_Go", "", false))

	tutorials, err := repo.FindByTitleContaining(context.Background(), "100%_go")
	if err != nil {
		t.Fatalf("FindByTitleContaining: %v", err)
	}
	if len(tutorials) != 1 {
		t.Fatalf("len: want=1 got=%d", len(tutorials))
	}
}

func TestTutorialRepositoryFindByIsPublished(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`WHERE\s+is_published = \$1`).
		WithArgs(true).
		WillReturnRows(pgxmock.NewRows(tutorialColumns).AddRow(int64(4), "Published", "", true))

	tutorials, err := repo.FindByIsPublished(context.Background(), true)
	if err != nil {
		t.Fatalf("FindByIsPublished: %v", err)
	}
	if len(tutorials) != 1 || !tutorials[0].IsPublished {
		t.Fatalf("tutorials: got=%+v", tutorials)
	}
}

func TestTutorialRepositorySaveInserts(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO tutorials \(title, description, is_published\)`).
		WithArgs("Go", "intro", false).
		WillReturnRows(pgxmock.NewRows(tutorialColumns).AddRow(int64(1), "Go", "intro", false))

	saved, err := repo.Save(context.Background(), &model.Tutorial{Title: "Go", Description: "intro"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.ID != 1 {
		t.Fatalf("id: want=1 got=%d", saved.ID)
	}
}

func TestTutorialRepositorySaveUpdates(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`UPDATE tutorials\s+SET\s+title = \$2, description = \$3, is_published = \$4\s+WHERE\s+id = \$1`).
		WithArgs(int64(5), "New", "changed", true).
		WillReturnRows(pgxmock.NewRows(tutorialColumns).AddRow(int64(5), "New", "changed", true))

	saved, err := repo.Save(context.Background(), &model.Tutorial{ID: 5, Title: "New", Description: "changed", IsPublished: true})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.Title != "New" || !saved.IsPublished {
		t.Fatalf("saved: got=%+v", saved)
	}
}

func TestTutorialRepositorySaveUpdateMissing(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`UPDATE tutorials`).
		WithArgs(int64(42), "T", "D", false).
		WillReturnRows(pgxmock.NewRows(tutorialColumns))

	_, err := repo.Save(context.Background(), &model.Tutorial{ID: 42, Title: "T", Description: "D"})
	if !sqlerr.IsNoRows(err) {
		t.Fatalf("error: want no rows got=%v", err)
	}
}

func TestTutorialRepositoryDeleteByID(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM tutorials WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	if err := repo.DeleteByID(context.Background(), 3); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
}

func TestTutorialRepositoryDeleteAll(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec(`^DELETE FROM tutorials$`).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	if err := repo.DeleteAll(context.Background()); err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}
}

func TestTutorialRepositoryQueryFailure(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`FROM\s+tutorials`).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.FindAll(context.Background())
	if err == nil {
		t.Fatal("FindAll: want error got nil")
	}
	if sqlerr.IsNoRows(err) {
		t.Fatalf("storage failure must not look like a missing row: %v", err)
	}
}
