package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/amenitygen/internal/domain"
)

// publishedReader defines the minimal interface needed by PublishedHandler.
type publishedReader interface {
	Latest(ctx context.Context) (domain.Generation, error)
	ListCategories(ctx context.Context, generationID uuid.UUID) ([]domain.Category, error)
}

// PublishedHandler serves the categories last written by publish.
type PublishedHandler struct {
	repo publishedReader
	log  *slog.Logger
}

// NewPublishedHandler creates a PublishedHandler.
func NewPublishedHandler(repo publishedReader, logger *slog.Logger) *PublishedHandler {
	return &PublishedHandler{repo: repo, log: logger.With("handler", "published")}
}

type publishedResponse struct {
	Generation domain.Generation  `json:"generation"`
	Categories []categoryResponse `json:"categories"`
}

// Latest handles GET /published/latest.
func (h *PublishedHandler) Latest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	gen, err := h.repo.Latest(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	cats, err := h.repo.ListCategories(ctx, gen.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	resp := publishedResponse{Generation: gen, Categories: make([]categoryResponse, len(cats))}
	for i, c := range cats {
		resp.Categories[i] = toCategoryResponse(i, c)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *PublishedHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "nothing published yet")
		return
	}
	h.log.ErrorContext(r.Context(), "read published generation", slog.String("error", err.Error()))
	writeError(w, http.StatusInternalServerError, "internal server error")
}
