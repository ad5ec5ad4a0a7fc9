package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/torvik/inventory/internal/api/response"
	"github.com/torvik/inventory/internal/core"
)

// writeServiceError maps service errors to HTTP responses. ErrNotFound
// becomes a 404, anything else a 500.
func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, core.ErrNotFound) {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	response.WriteError(w, http.StatusInternalServerError, err.Error())
}

// customFieldsOrEmpty normalizes an absent custom_fields payload to an
// empty JSON object so the column is never null.
func customFieldsOrEmpty(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return json.RawMessage(`{}`)
	}
	return raw
}
