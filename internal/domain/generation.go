package domain

import (
	"time"

	"github.com/google/uuid"
)

// Generation is one published compile run. Its categories are stored with
// their enumeration position, so position 0 is always none.
type Generation struct {
	ID         uuid.UUID `json:"id"`
	Source     string    `json:"source"`
	RuleCount  int       `json:"rule_count"`
	FieldCount int       `json:"field_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewGeneration describes the publication of art, compiled from source.
func NewGeneration(id uuid.UUID, source string, art *Artifact) Generation {
	return Generation{
		ID:         id,
		Source:     source,
		RuleCount:  art.RuleCount(),
		FieldCount: len(art.Fields),
	}
}
