package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	payload := map[string]string{"hello": "world"}

	WriteJSON(w, http.StatusOK, payload)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &body)
	require.NoError(t, err)
	assert.Equal(t, "world", body["hello"])
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	WriteError(w, http.StatusBadRequest, "something went wrong")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &body)
	require.NoError(t, err)
	assert.Equal(t, "something went wrong", body["error"])
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) ListResponse {
	t.Helper()
	var resp ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestWriteList_SinglePage(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "http://api.example.test/api/dcim/sites/", nil)

	WriteList(w, r, []string{"a", "b"}, 2, 50, 0)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeList(t, w)
	assert.Equal(t, 2, resp.Count)
	assert.Nil(t, resp.Next)
	assert.Nil(t, resp.Previous)
}

func TestWriteList_FirstPage(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "http://api.example.test/api/dcim/sites/?limit=50", nil)

	WriteList(w, r, []string{}, 120, 50, 0)

	resp := decodeList(t, w)
	require.NotNil(t, resp.Next)
	assert.Contains(t, *resp.Next, "http://api.example.test/api/dcim/sites/")
	assert.Contains(t, *resp.Next, "offset=50")
	assert.Nil(t, resp.Previous)
}

func TestWriteList_MiddlePage(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "http://api.example.test/api/dcim/sites/?limit=50&offset=50", nil)

	WriteList(w, r, []string{}, 120, 50, 50)

	resp := decodeList(t, w)
	require.NotNil(t, resp.Next)
	assert.Contains(t, *resp.Next, "offset=100")
	require.NotNil(t, resp.Previous)
	assert.Contains(t, *resp.Previous, "offset=0")
}

func TestWriteList_LastPage(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "http://api.example.test/api/dcim/sites/?limit=50&offset=100", nil)

	WriteList(w, r, []string{}, 120, 50, 100)

	resp := decodeList(t, w)
	assert.Nil(t, resp.Next)
	require.NotNil(t, resp.Previous)
	assert.Contains(t, *resp.Previous, "offset=50")
}

func TestWriteList_ForwardedProto(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "http://api.example.test/api/dcim/sites/", nil)
	r.Header.Set("X-Forwarded-Proto", "https")

	WriteList(w, r, []string{}, 120, 50, 0)

	resp := decodeList(t, w)
	require.NotNil(t, resp.Next)
	assert.Contains(t, *resp.Next, "https://")
}
