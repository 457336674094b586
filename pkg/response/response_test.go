package response

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorIs(t *testing.T) {
	notFound := NewError(http.StatusNotFound, "post not found")

	assert.True(t, errors.Is(notFound, NewError(http.StatusNotFound, "post not found")))
	assert.False(t, errors.Is(notFound, NewError(http.StatusConflict, "post not found")))
	assert.False(t, errors.Is(notFound, NewError(http.StatusNotFound, "tag not found")))
	assert.False(t, errors.Is(notFound, errors.New("post not found")))
}

func TestNewErrorf(t *testing.T) {
	err := NewErrorf(http.StatusConflict, "cannot delete category %q because it has %d posts associated with it", "Go", 3)

	var coded *Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, http.StatusConflict, coded.Code)
	assert.Equal(t, `cannot delete category "Go" because it has 3 posts associated with it`, err.Error())
}
