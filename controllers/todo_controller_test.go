package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/martwain/todobackend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) accessTokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	pair, err := e.tokens.CreateToken(context.Background(), user)
	require.NoError(t, err)
	return "Bearer " + pair.AccessToken
}

func (e *testEnv) do(method, path, token string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestTodoItemCRUD(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice@example.com", "S3cret!pw")
	aliceToken := env.accessTokenFor(t, alice)

	var created models.TodoItem

	t.Run("create", func(t *testing.T) {
		w := env.do(http.MethodPost, "/TodoItem", aliceToken, url.Values{"Text": {"buy milk"}})
		require.Equal(t, http.StatusCreated, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, "buy milk", created.Text)
		assert.False(t, created.IsCompleted)
		assert.Equal(t, alice.ID, created.UserID)
	})

	t.Run("create rejects blank text", func(t *testing.T) {
		w := env.do(http.MethodPost, "/TodoItem", aliceToken, url.Values{"Text": {"   "}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("list", func(t *testing.T) {
		w := env.do(http.MethodGet, "/TodoItem", aliceToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var items []models.TodoItem
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
		require.Len(t, items, 1)
		assert.Equal(t, created.ID, items[0].ID)
	})

	t.Run("update text", func(t *testing.T) {
		w := env.do(http.MethodPut, "/TodoItem/"+created.ID.Hex(), aliceToken, url.Values{"Text": {"buy oat milk"}})
		require.Equal(t, http.StatusOK, w.Code)

		var item models.TodoItem
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
		assert.Equal(t, "buy oat milk", item.Text)
	})

	t.Run("mark completed and incompleted", func(t *testing.T) {
		w := env.do(http.MethodPatch, "/TodoItem/"+created.ID.Hex()+"/MarkCompleted", aliceToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var item models.TodoItem
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
		assert.True(t, item.IsCompleted)

		w = env.do(http.MethodPatch, "/TodoItem/"+created.ID.Hex()+"/MarkIncompleted", aliceToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
		assert.False(t, item.IsCompleted)
	})

	t.Run("delete", func(t *testing.T) {
		w := env.do(http.MethodDelete, "/TodoItem/"+created.ID.Hex(), aliceToken, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = env.do(http.MethodDelete, "/TodoItem/"+created.ID.Hex(), aliceToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTodoItemOwnership(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice@example.com", "S3cret!pw")
	bob := env.registerUser(t, "bob@example.com", "S3cret!pw")
	aliceToken := env.accessTokenFor(t, alice)
	bobToken := env.accessTokenFor(t, bob)

	w := env.do(http.MethodPost, "/TodoItem", aliceToken, url.Values{"Text": {"alice's item"}})
	require.Equal(t, http.StatusCreated, w.Code)
	var item models.TodoItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))

	t.Run("other user cannot update", func(t *testing.T) {
		w := env.do(http.MethodPut, "/TodoItem/"+item.ID.Hex(), bobToken, url.Values{"Text": {"bob was here"}})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("other user cannot complete", func(t *testing.T) {
		w := env.do(http.MethodPatch, "/TodoItem/"+item.ID.Hex()+"/MarkCompleted", bobToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("other user cannot delete", func(t *testing.T) {
		w := env.do(http.MethodDelete, "/TodoItem/"+item.ID.Hex(), bobToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("other user does not see it in their list", func(t *testing.T) {
		w := env.do(http.MethodGet, "/TodoItem", bobToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var items []models.TodoItem
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
		assert.Empty(t, items)
	})

	t.Run("owner can still act", func(t *testing.T) {
		w := env.do(http.MethodPatch, "/TodoItem/"+item.ID.Hex()+"/MarkCompleted", aliceToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unauthenticated caller", func(t *testing.T) {
		w := env.do(http.MethodPut, "/TodoItem/"+item.ID.Hex(), "", url.Values{"Text": {"anon"}})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		w := env.do(http.MethodDelete, "/TodoItem/ffffffffffffffffffffffff", aliceToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = env.do(http.MethodDelete, "/TodoItem/not-an-id", aliceToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
