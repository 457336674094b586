package categoryRepository

import (
	"errors"
	"testing"

	"BlogGolang/internal/api/category"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestTranslateConstraintErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "duplicate name",
			err:  &pq.Error{Code: "23505", Constraint: "categories_name_key"},
			want: category.ErrCategoryNameExists,
		},
		{
			name: "duplicate slug",
			err:  &pq.Error{Code: "23505", Constraint: "categories_slug_key"},
			want: category.ErrCategorySlugExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translateConstraintErr(tt.err), tt.want)
		})
	}
}

func TestTranslateConstraintErr_Passthrough(t *testing.T) {
	// Non-unique-violation errors come back untouched.
	fkErr := &pq.Error{Code: "23503", Constraint: "posts_category_id_fkey"}
	assert.Equal(t, error(fkErr), translateConstraintErr(fkErr))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, translateConstraintErr(plain))
}
