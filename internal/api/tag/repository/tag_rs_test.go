package tagRepository

import (
	"testing"

	"BlogGolang/internal/api/tag"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestTranslateConstraintErr(t *testing.T) {
	assert.ErrorIs(t,
		translateConstraintErr(&pq.Error{Code: "23505", Constraint: "tags_name_key"}),
		tag.ErrTagNameExists)
	assert.ErrorIs(t,
		translateConstraintErr(&pq.Error{Code: "23505", Constraint: "tags_slug_key"}),
		tag.ErrTagSlugExists)
}
