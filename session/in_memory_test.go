package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentbus/core"
)

func TestInMemoryStoreLazyCreate(t *testing.T) {
	store := NewInMemoryStore()

	sess, err := store.Get("chat-1")
	require.NoError(t, err)
	assert.Equal(t, "chat-1", sess.ID)
	assert.Empty(t, sess.Contents)
}

func TestInMemoryStoreAppend(t *testing.T) {
	store := NewInMemoryStore()

	require.NoError(t, store.Append("chat-1", core.NewUserContent("hello")))
	require.NoError(t, store.Append("chat-1", core.Content{
		Role:  "assistant",
		Parts: []core.Part{core.TextPart{Text: "hi there"}},
	}))

	sess, err := store.Get("chat-1")
	require.NoError(t, err)
	require.Len(t, sess.Contents, 2)
	assert.Equal(t, "user", sess.Contents[0].Role)
	assert.Equal(t, "hi there", core.TextOf(sess.Contents[1]))
}

func TestInMemoryStoreCloneIsolation(t *testing.T) {
	store := NewInMemoryStore()
	require.NoError(t, store.Append("chat-1", core.NewUserContent("hello")))

	sess, err := store.Get("chat-1")
	require.NoError(t, err)
	sess.Contents = append(sess.Contents, core.NewUserContent("injected"))

	again, err := store.Get("chat-1")
	require.NoError(t, err)
	assert.Len(t, again.Contents, 1)
}

func TestInMemoryStoreCreateResets(t *testing.T) {
	store := NewInMemoryStore()
	require.NoError(t, store.Append("chat-1", core.NewUserContent("hello")))

	sess, err := store.Create("chat-1")
	require.NoError(t, err)
	assert.Empty(t, sess.Contents)
}
