package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

func TestRequired(t *testing.T) {
	assert.NoError(t, Required(Field{"BookID", "B1"}, Field{"Title", "War"}))

	err := Required(Field{"BookID", " "}, Field{"Title", ""}, Field{"AuthID", "A1"})
	require.Error(t, err)
	assert.Equal(t, "BookID and Title are required", apperrors.GetAppError(err).Message)
	assert.Equal(t, 400, apperrors.GetAppError(err).HTTPStatus())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("Birthday", "1828-09-09")
	require.NoError(t, err)
	assert.Equal(t, 1828, d.Year())

	d, err = ParseDate("Birthday", "")
	assert.NoError(t, err)
	assert.Nil(t, d)

	_, err = ParseDate("Birthday", "09/09/1828")
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	assert.Equal(t, 422, appErr.HTTPStatus())
	assert.Equal(t, "Invalid Birthday format. Expected YYYY-MM-DD", appErr.Message)

	_, changed, err := ParseDatePtr("Birthday", nil)
	assert.NoError(t, err)
	assert.False(t, changed)

	empty := ""
	d, changed, err = ParseDatePtr("Birthday", &empty)
	assert.NoError(t, err)
	assert.True(t, changed)
	assert.Nil(t, d)
}

func TestLimit(t *testing.T) {
	n := func(v int) *int { return &v }
	assert.Equal(t, 10, Limit(nil, 10, 100))
	assert.Equal(t, 10, Limit(n(0), 10, 100))
	assert.Equal(t, 25, Limit(n(25), 10, 100))
	assert.Equal(t, 100, Limit(n(1000), 10, 100))
}

type existsSet map[string]bool

func (s existsSet) Exists(_ context.Context, id string) (bool, error) {
	return s[id], nil
}

func TestReference(t *testing.T) {
	ctx := context.Background()
	repo := existsSet{"P1": true}

	assert.NoError(t, Reference(ctx, repo, "PubID", "P1"))
	assert.NoError(t, Reference(ctx, repo, "PubID", ""))

	err := Reference(ctx, repo, "PubID", "P9")
	require.Error(t, err)
	assert.Equal(t, "PubID 'P9' does not exist", apperrors.GetAppError(err).Message)
	assert.Equal(t, 400, apperrors.GetAppError(err).HTTPStatus())
}
