package postRepository

import (
	"testing"

	"BlogGolang/internal/api/post"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestTranslateConstraintErr(t *testing.T) {
	dup := &pq.Error{Code: "23505", Constraint: "posts_slug_key"}
	assert.ErrorIs(t, translateConstraintErr(dup), post.ErrPostSlugExists)

	fk := &pq.Error{Code: "23503", Constraint: "posts_author_id_fkey"}
	assert.Equal(t, error(fk), translateConstraintErr(fk))
}
