package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChange(t *testing.T) {
	c := NewChange(EntityLigne, "l1", OpDelete).WithParent("d1").WithActor("alice")

	assert.NotEmpty(t, c.EventID)
	assert.Equal(t, EntityLigne, c.Entity)
	assert.Equal(t, "l1", c.Key)
	assert.Equal(t, "d1", c.ParentKey)
	assert.Equal(t, "alice", c.Actor)
	assert.Equal(t, OpDelete, c.Op)
	assert.NotZero(t, c.Timestamp)
}

func TestChange_Subject(t *testing.T) {
	c := NewChange(EntityDocument, "d1", OpCreate)
	assert.Equal(t, "changes.documents.create", c.Subject())
}

func TestChange_EncodeDecode(t *testing.T) {
	c := NewChange(EntityStep, "s1", OpUpdate)
	decoded, err := Decode(c.Encode())
	require.NoError(t, err)
	assert.Equal(t, c, decoded)

	_, err = Decode([]byte("{not json"))
	assert.Error(t, err)
}

func TestOperation_IsValid(t *testing.T) {
	assert.True(t, OpCreate.IsValid())
	assert.True(t, OpUpdate.IsValid())
	assert.True(t, OpDelete.IsValid())
	assert.False(t, Operation("upsert").IsValid())
}
