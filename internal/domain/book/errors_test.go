package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDependents(t *testing.T) {
	assert.False(t, Dependents{}.Any())

	d := Dependents{Editions: 2}
	assert.True(t, d.Any())
	assert.Equal(t, "Cannot delete book with associated editions", d.Conflict().Message)

	d = Dependents{Editions: 1, Ratings: 3}
	assert.Equal(t, "Cannot delete book with associated editions and ratings", d.Conflict().Message)

	d = Dependents{Editions: 1, Awards: 1, Checkouts: 1}
	assert.Equal(t, "Cannot delete book with associated editions, awards, and checkouts", d.Conflict().Message)
	assert.Equal(t, 400, d.Conflict().HTTPStatus())
}
