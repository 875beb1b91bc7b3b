package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/amenitygen/internal/domain"
)

const maxClassifyBody = 1 << 20

// classifier defines the minimal interface needed by CategoryHandler.
type classifier interface {
	ClassifyMap(tags map[string]string) (int, domain.Category)
}

// CategoryHandler serves the compiled category table and classifies tag
// sets against it.
type CategoryHandler struct {
	art *domain.Artifact
	cls classifier
	log *slog.Logger
}

// NewCategoryHandler creates a CategoryHandler.
func NewCategoryHandler(art *domain.Artifact, cls classifier, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{art: art, cls: cls, log: logger.With("handler", "category")}
}

type categoryResponse struct {
	Index      int    `json:"index"`
	EnumName   string `json:"enum_name"`
	StringName string `json:"string_name"`
	NameSource string `json:"name_source,omitempty"`
}

type listResponse struct {
	Categories []categoryResponse `json:"categories"`
	Fields     []domain.Field     `json:"fields"`
}

type classifyRequest struct {
	Tags map[string]string `json:"tags"`
}

type classifyResponse struct {
	Category string `json:"category"`
	EnumName string `json:"enum_name"`
	Index    int    `json:"index"`
}

func toCategoryResponse(i int, c domain.Category) categoryResponse {
	return categoryResponse{Index: i, EnumName: c.EnumName, StringName: c.StringName, NameSource: c.NameSource}
}

// List handles GET /categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	resp := listResponse{
		Categories: make([]categoryResponse, len(h.art.Categories)),
		Fields:     h.art.Fields,
	}
	for i, c := range h.art.Categories {
		resp.Categories[i] = toCategoryResponse(i, c)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /categories/{name}, looked up by string name.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	i, c, ok := h.art.CategoryByString(r.PathValue("name"))
	if !ok {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponse(i, c))
}

// Classify handles POST /classify.
func (h *CategoryHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxClassifyBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	i, c := h.cls.ClassifyMap(req.Tags)
	h.log.DebugContext(r.Context(), "classified",
		slog.Int("tags", len(req.Tags)),
		slog.String("category", c.StringName),
	)
	writeJSON(w, http.StatusOK, classifyResponse{Category: c.StringName, EnumName: c.EnumName, Index: i})
}
