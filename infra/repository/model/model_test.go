package model_test

import (
	"sync"
	"testing"

	"finbook/infra/repository/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func parse(t *testing.T, value any) *schema.Schema {
	t.Helper()
	s, err := schema.Parse(value, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	return s
}

// Deleting an account must null the ledger references, not delete history.
// The constraints hang off the association fields; plain uuid columns would
// not produce foreign keys at migration time.
func TestTransactionAccountReferencesAreWeak(t *testing.T) {
	t.Parallel()
	s := parse(t, &model.Transaction{})

	for _, name := range []string{"SourceAccount", "DestinationAccount"} {
		rel, ok := s.Relationships.Relations[name]
		require.True(t, ok, "missing relationship %s", name)

		constraint := rel.ParseConstraint()
		require.NotNil(t, constraint, "no constraint parsed for %s", name)
		assert.Equal(t, "SET NULL", constraint.OnDelete, name)
	}
}

func TestNamespaceAccountsCascade(t *testing.T) {
	t.Parallel()
	s := parse(t, &model.Namespace{})

	rel, ok := s.Relationships.Relations["Accounts"]
	require.True(t, ok, "missing Accounts relationship")

	constraint := rel.ParseConstraint()
	require.NotNil(t, constraint)
	assert.Equal(t, "CASCADE", constraint.OnDelete)
}
