package document_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billbook/internal/document"
	"billbook/internal/domain"
)

func TestDecodeCommand_UpdateItem(t *testing.T) {
	id := uuid.New()
	raw := `{"type":"UPDATE_ITEM","payload":{"item_id":"` + id.String() + `","field":"primary_quantity","value":"3"}}`

	cmd, err := document.DecodeCommand([]byte(raw))
	require.NoError(t, err)

	update, ok := cmd.(document.UpdateItem)
	require.True(t, ok)
	assert.Equal(t, id, update.ItemID)
	assert.Equal(t, domain.ItemFieldPrimaryQuantity, update.Field)
	assert.Equal(t, "3", update.Value)
}

func TestDecodeCommand_WithoutPayload(t *testing.T) {
	for _, raw := range []string{
		`{"type":"RESET"}`,
		`{"type":"ADD_ITEM"}`,
		`{"type":"ADD_ITEM","payload":null}`,
	} {
		cmd, err := document.DecodeCommand([]byte(raw))
		require.NoError(t, err, raw)
		assert.NotNil(t, cmd, raw)
	}
}

func TestDecodeCommand_Errors(t *testing.T) {
	_, err := document.DecodeCommand([]byte(`{"type":"TELEPORT"}`))
	assert.ErrorIs(t, err, domain.ErrUnknownCommand)

	_, err = document.DecodeCommand([]byte(`not json`))
	assert.Error(t, err)

	_, err = document.DecodeCommand([]byte(`{"type":"REMOVE_ITEM","payload":{"item_id":"not-a-uuid"}}`))
	assert.Error(t, err)
}

func TestDecodeCommands_DrivesStore(t *testing.T) {
	raw := `[
		{"type":"UPDATE_FIELD","payload":{"field":"party_name","value":"Acme"}},
		{"type":"ADD_ITEM","payload":{"catalog_item_id":"cat-soap"}},
		{"type":"ADD_CHARGE","payload":{"name":"Loading","amount":2}},
		{"type":"UPDATE_FIELD","payload":{"field":"shipping","value":5}}
	]`

	cmds, err := document.DecodeCommands([]byte(raw))
	require.NoError(t, err)
	require.Len(t, cmds, 4)

	s := newStore(t)
	for _, cmd := range cmds {
		require.NoError(t, s.Dispatch(cmd))
	}

	doc := s.Document()
	assert.Equal(t, "Acme", doc.PartyName)
	assert.Equal(t, 125.0, doc.Total)
}

func TestDecodeCommands_ReportsIndex(t *testing.T) {
	_, err := document.DecodeCommands([]byte(`[{"type":"RESET"},{"type":"NOPE"}]`))

	assert.ErrorIs(t, err, domain.ErrUnknownCommand)
	assert.Contains(t, err.Error(), "command 1")
}
