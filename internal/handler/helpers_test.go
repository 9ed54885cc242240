package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Sabogal22/Sistema-de-inventario/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", apierror.Validation("bad"), http.StatusBadRequest},
		{"not found", apierror.NotFound("missing"), http.StatusNotFound},
		{"conflict", apierror.Conflict("dup"), http.StatusConflict},
		{"insufficient stock", apierror.InsufficientStock("no stock"), http.StatusConflict},
		{"permission", apierror.Permission("no"), http.StatusForbidden},
		{"authentication", apierror.Authentication("who"), http.StatusUnauthorized},
		{"unknown", errors.New("db exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)

			respondError(c, tc.err)
			assert.Equal(t, tc.status, w.Code)

			var body struct {
				Detail string `json:"detail"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tc.status == http.StatusInternalServerError {
				// Internal details never leak
				assert.NotContains(t, body.Detail, "db exploded")
			} else {
				assert.Equal(t, tc.err.Error(), body.Detail)
			}
		})
	}
}

func TestBindAndValidate(t *testing.T) {
	type payload struct {
		Type     string `json:"type"     validate:"required,oneof=add subtract"`
		Quantity int    `json:"quantity" validate:"required,gt=0"`
	}

	run := func(body string) (*httptest.ResponseRecorder, bool) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("POST", "/", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		var p payload
		ok := bindAndValidate(c, &p)
		return w, ok
	}

	w, ok := run(`{"type":"add","quantity":3}`)
	assert.True(t, ok)
	assert.Equal(t, http.StatusOK, w.Code) // nothing written on success

	w, ok = run(`{"type":"transfer","quantity":3}`)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "oneof", resp.Fields["Type"])

	w, ok = run(`{"type":"add","quantity":0}`)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, ok = run(`not json`)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
