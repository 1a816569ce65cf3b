package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/raptor/core/handler"
)

func TestResponseClone(t *testing.T) {
	t.Parallel()

	orig := &handler.Response{
		Status: http.StatusAccepted,
		Header: http.Header{"X-Test": {"a"}},
		Body:   []byte("body"),
	}

	clone := orig.Clone()
	require.NotNil(t, clone)

	clone.Header.Set("X-Test", "b")
	clone.Body[0] = 'B'

	assert.Equal(t, "a", orig.Header.Get("X-Test"))
	assert.Equal(t, "body", string(orig.Body))
	assert.Equal(t, http.StatusAccepted, clone.Status)

	var nilResp *handler.Response
	assert.Nil(t, nilResp.Clone())
}

func TestResponseCloneNilHeader(t *testing.T) {
	t.Parallel()

	clone := (&handler.Response{Status: http.StatusOK}).Clone()
	assert.NotNil(t, clone.Header)
}

func TestResponseWrite(t *testing.T) {
	t.Parallel()

	t.Run("writes status headers and body", func(t *testing.T) {
		w := httptest.NewRecorder()
		resp := &handler.Response{
			Status: http.StatusTeapot,
			Header: http.Header{"Content-Type": {"text/plain"}},
			Body:   []byte("short and stout"),
		}

		require.NoError(t, resp.Write(w))
		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.Equal(t, "text/plain", w.Header().Get("Content-Type"))
		assert.Equal(t, "short and stout", w.Body.String())
	})

	t.Run("zero status defaults to 200", func(t *testing.T) {
		w := httptest.NewRecorder()
		require.NoError(t, (&handler.Response{}).Write(w))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestResponseContentType(t *testing.T) {
	t.Parallel()

	var nilResp *handler.Response
	assert.Empty(t, nilResp.ContentType())

	resp := handler.NewResponse()
	resp.Header.Set("Content-Type", "text/html")
	assert.Equal(t, "text/html", resp.ContentType())
}
