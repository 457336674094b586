package userRepository

import (
	"testing"

	"BlogGolang/internal/api/user"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestTranslateConstraintErr(t *testing.T) {
	dup := &pq.Error{Code: "23505", Constraint: "users_email_key"}
	assert.ErrorIs(t, translateConstraintErr(dup), user.ErrEmailExists)

	other := &pq.Error{Code: "23505", Constraint: "some_other_key"}
	assert.Equal(t, error(other), translateConstraintErr(other))
}
