package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

func TestRespondValidationError(t *testing.T) {
	var verrs domain.ValidationErrors
	verrs.Add(domain.FieldSlotDurationMinutes, "должно быть больше 0")

	rec := httptest.NewRecorder()
	RespondValidationError(rec, verrs)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Fields, 1)
	assert.Equal(t, domain.FieldSlotDurationMinutes, body.Fields[0].Field)
}

func TestRespondValidationError_PlainError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondValidationError(rec, errors.New("boom"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotContains(t, rec.Body.String(), "fields")
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Анна"}`))
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, "Анна", dst.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.ErrorIs(t, DecodeJSON(req, &dst), ErrEmptyBody)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	assert.Error(t, DecodeJSON(req, &dst))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2025-03-10 ")
	require.NoError(t, err)
	assert.Equal(t, 10, d.Day())

	_, err = ParseDate("10.03.2025")
	assert.Error(t, err)
}
