package aodata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHistoryQueryShape(t *testing.T) {
	var gotPath, gotScale, gotLocations, gotQualities string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotScale = r.URL.Query().Get("time-scale")
		gotLocations = r.URL.Query().Get("locations")
		gotQualities = r.URL.Query().Get("qualities")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{
			"location":"Caerleon","item_id":"T4_BAG","quality":1,
			"data":[{"item_count":5,"avg_price":1200.5,"timestamp":"2026-03-01T06:00:00"}]
		}]`)
	}))
	defer srv.Close()

	c := NewHistoryClient(Config{BaseURL: srv.URL})
	histories, err := c.History(context.Background(), "T4_BAG", HistoryOptions{
		Locations: []string{"Caerleon", "Martlock"},
		Quality:   1,
	})
	require.NoError(t, err)

	require.Equal(t, "/api/v2/stats/history/T4_BAG", gotPath)
	require.Equal(t, "6", gotScale, "bucket width defaults to six hours")
	require.Equal(t, "Caerleon,Martlock", gotLocations)
	require.Equal(t, "1", gotQualities)

	require.Len(t, histories, 1)
	require.Equal(t, "Caerleon", histories[0].Location)
	require.Len(t, histories[0].Data, 1)
	require.Equal(t, 1200.5, histories[0].Data[0].AvgPrice)
	require.Equal(t,
		time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC),
		time.Time(histories[0].Data[0].Timestamp))
}

func TestHistoryRequiresItemID(t *testing.T) {
	c := NewHistoryClient(Config{BaseURL: "http://localhost:1"})
	_, err := c.History(context.Background(), "", HistoryOptions{})
	require.Error(t, err)
}

func TestHistoryErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such item", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewHistoryClient(Config{BaseURL: srv.URL})
	_, err := c.History(context.Background(), "BOGUS", HistoryOptions{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "404")
}
