package queries_test

import (
	"testing"

	"ordering/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetUndeliveredOrdersQuery(t *testing.T) {
	query := queries.NewGetUndeliveredOrdersQuery()
	require.NoError(t, query.Validate())
}

func TestGetUndeliveredOrdersQuery_NotConstructed(t *testing.T) {
	var query queries.GetUndeliveredOrdersQuery
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetUndeliveredOrdersQueryIsNotConstructed)
}
