package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_NilClientIsUnavailable(t *testing.T) {
	t.Parallel()

	total, prods, err := Search(context.Background(), nil, "products", "pienso", 0, 10)
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Zero(t, total)
	assert.Nil(t, prods)
}
