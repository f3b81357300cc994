package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportFlips(t *testing.T) {
	_, r := newTestServer(t, liveSnapshot())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/flips/export", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Disposition"), "flips-west-")
	require.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Flips")
	require.NoError(t, err)
	// Header plus the two profitable flips.
	require.Len(t, rows, 3)
	require.Equal(t, "Item", rows[0][0])
	require.Equal(t, "Margin %", rows[0][11])
	require.Equal(t, "Broadsword T5", rows[1][0], "most profitable flip first")
	require.Equal(t, "Bag T4", rows[2][0])
}

func TestExportFlipsRespectsFilters(t *testing.T) {
	_, r := newTestServer(t, liveSnapshot())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/flips/export?city=Martlock", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Flips")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Bag T4", rows[1][0])
}
