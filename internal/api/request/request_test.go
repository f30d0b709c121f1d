package request

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"status":"Paid"}`))
	var req UpdatePTP
	require.NoError(t, Decode(r, &req))
	assert.Equal(t, "Paid", req.Status)
}

func TestDecode_InvalidJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{bad`))
	var req UpdatePTP
	err := Decode(r, &req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestDecode_Validation(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"status":"Maybe"}`))
	var req UpdatePTP
	err := Decode(r, &req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation error")
}

func TestParseID(t *testing.T) {
	_, err := ParseID("")
	assert.Error(t, err)

	_, err = ParseID("not-a-uuid")
	assert.Error(t, err)

	id, err := ParseID("0b4a0d0e-5c8e-4a36-9f31-6d4b4f1c2a11")
	require.NoError(t, err)
	assert.Equal(t, "0b4a0d0e-5c8e-4a36-9f31-6d4b4f1c2a11", id.String())
}

func TestDate(t *testing.T) {
	var v struct {
		A Date  `json:"a"`
		B Date  `json:"b"`
		C *Date `json:"c"`
		D Date  `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"2024-03-05","b":"2024-03-05T10:00:00Z","c":null,"d":""}`), &v))

	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), v.A.Time)
	assert.Equal(t, time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), v.B.Time)
	assert.Nil(t, v.C.TimePtr())
	assert.True(t, v.D.IsZero())
	assert.Nil(t, v.D.TimePtr())

	assert.Error(t, json.Unmarshal([]byte(`{"a":"05/03/2024"}`), &v))
}
