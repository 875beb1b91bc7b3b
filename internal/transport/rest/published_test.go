package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/amenitygen/internal/config"
	"github.com/heartmarshall/amenitygen/internal/domain"
)

type mockPublished struct {
	gen     domain.Generation
	cats    []domain.Category
	latErr  error
	listErr error
	listed  uuid.UUID
}

func (m *mockPublished) Latest(ctx context.Context) (domain.Generation, error) {
	return m.gen, m.latErr
}

func (m *mockPublished) ListCategories(ctx context.Context, id uuid.UUID) ([]domain.Category, error) {
	m.listed = id
	return m.cats, m.listErr
}

func newPublishedRouter(t *testing.T, repo *mockPublished) http.Handler {
	t.Helper()
	art := testArtifact(t)
	return NewRouter(
		NewCategoryHandler(art, nil, testLogger()),
		NewPublishedHandler(repo, testLogger()),
		NewHealthHandler(nil, "test", art.RuleCount()),
		config.CORSConfig{},
		testLogger(),
	)
}

func TestPublishedHandler_Latest(t *testing.T) {
	t.Parallel()

	genID := uuid.New()
	repo := &mockPublished{
		gen: domain.Generation{ID: genID, Source: "categories.html", RuleCount: 1, CreatedAt: time.Now()},
		cats: []domain.Category{
			{EnumName: "kNone", StringName: "none"},
			{EnumName: "kBench", StringName: "bench", NameSource: "Bench"},
			{EnumName: "kExtra", StringName: "extra"},
		},
	}

	rec := httptest.NewRecorder()
	newPublishedRouter(t, repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/published/latest", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if repo.listed != genID {
		t.Errorf("ListCategories called with %s, want %s", repo.listed, genID)
	}

	var resp publishedResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Generation.ID != genID {
		t.Errorf("expected generation %s, got %s", genID, resp.Generation.ID)
	}
	if len(resp.Categories) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(resp.Categories))
	}
	if resp.Categories[1].Index != 1 || resp.Categories[1].EnumName != "kBench" {
		t.Errorf("unexpected category: %+v", resp.Categories[1])
	}
}

func TestPublishedHandler_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		repo       *mockPublished
		wantStatus int
	}{
		{
			name:       "nothing published",
			repo:       &mockPublished{latErr: fmt.Errorf("generation: %w", domain.ErrNotFound)},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "latest fails",
			repo:       &mockPublished{latErr: errors.New("connection reset")},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "list fails",
			repo:       &mockPublished{gen: domain.Generation{ID: uuid.New()}, listErr: errors.New("timeout")},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			newPublishedRouter(t, tt.repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/published/latest", nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestRouter_NoPublishedWithoutDatabase(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/published/latest", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}
