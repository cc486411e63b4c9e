package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeKeepsType(t *testing.T) {
	e := New("NOTE_CREATED", map[string]interface{}{"workspaceId": "w1", "subject": "Plan"})

	raw, err := Encode(e)
	require.NoError(t, err)

	got, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "NOTE_CREATED", got.EventType())
	assert.Equal(t, "w1", got.String("workspaceId"))
	assert.Equal(t, "", got.String("missing"))
	assert.True(t, e.Timestamp().Equal(got.Timestamp()))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("{"))
	assert.Error(t, err)
}
