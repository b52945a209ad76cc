package testutil

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/dom/hero-draft-assistant/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStoreContract checks the behaviour every repository.Store must share.
// Values are compared as JSON since some backends normalize documents.
func RunStoreContract(t *testing.T, store repository.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := store.Load(ctx, "contract_missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("save then load", func(t *testing.T) {
		value := json.RawMessage(`{"name":"Tulen","classes":["Mage","Assassin"]}`)
		require.NoError(t, store.Save(ctx, "contract_roundtrip", value))

		got, err := store.Load(ctx, "contract_roundtrip")
		require.NoError(t, err)
		assert.JSONEq(t, string(value), string(got))
	})

	t.Run("save overwrites", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "contract_overwrite", json.RawMessage(`[1,2,3]`)))
		require.NoError(t, store.Save(ctx, "contract_overwrite", json.RawMessage(`"global"`)))

		got, err := store.Load(ctx, "contract_overwrite")
		require.NoError(t, err)
		assert.JSONEq(t, `"global"`, string(got))
	})

	t.Run("keys are independent", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "contract_a", json.RawMessage(`{"a":1}`)))
		require.NoError(t, store.Save(ctx, "contract_b", json.RawMessage(`{"b":2}`)))

		a, err := store.Load(ctx, "contract_a")
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":1}`, string(a))
	})

	t.Run("invalid json rejected", func(t *testing.T) {
		err := store.Save(ctx, "contract_invalid", json.RawMessage(`{not json`))
		assert.ErrorIs(t, err, repository.ErrInvalidValue)

		_, err = store.Load(ctx, "contract_invalid")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
