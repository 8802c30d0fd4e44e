package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ridereport/internal/domain"
)

func testCred() domain.Credential {
	return domain.Credential{SessionCookie: "sid=abc", CSRFToken: "csrf-token"}
}

func testWindow() domain.DateWindow {
	return domain.DateWindow{
		Start: time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 11, 30, 0, 0, 0, 0, time.UTC),
	}
}

func TestFetchActivitiesPageMapsEnvelope(t *testing.T) {
	var gotOp string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/graphql", r.URL.Path)
		require.Equal(t, "sid=abc", r.Header.Get("Cookie"))
		require.Equal(t, "csrf-token", r.Header.Get("X-Csrf-Token"))

		var req gqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotOp = req.OperationName

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"activities":{"rideActivities":[
			{"uuid":"t1","title":"UberGo","subtitle":"16 Nov • ₹84.38","description":"12 MG Road","imageURL":{"light":"l.png","dark":"d.png"},"buttons":[{"text":"Details","url":"https://x/t1"}]},
			{"uuid":"t2","title":"Auto","subtitle":"17 Nov • ₹50.00"}
		],"nextPageToken":"abc123"}}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	page, err := client.FetchActivitiesPage(context.Background(), testCred(), testWindow(), 10, "")
	require.NoError(t, err)
	require.Equal(t, "Activities", gotOp)
	require.Equal(t, "abc123", page.NextToken)
	require.Len(t, page.Activities, 2)
	require.Equal(t, "t1", page.Activities[0].ID)
	require.Equal(t, "l.png", page.Activities[0].ImageURL)
	require.Len(t, page.Activities[0].Buttons, 1)
}

func TestFetchActivitiesPageMissingTokenMeansDone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"activities":{"rideActivities":[],"nextPageToken":"  "}}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	page, err := client.FetchActivitiesPage(context.Background(), testCred(), testWindow(), 10, "")
	require.NoError(t, err)
	require.Empty(t, page.NextToken, "whitespace token is not a continuation")
}

func TestFetchTripDetailMapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"getTrip":{
			"trip":{"uuid":"t1","beginTripTime":"2024-11-16T10:05:00Z","dropoffTime":"2024-11-16T10:35:00Z",
				"waypoints":["12 MG Road","Airport T2"],"driver":"Ramesh","fare":"₹84.38","status":"COMPLETED",
				"vehicleDisplayName":"UberGo","cityID":"9","countryID":"IN"},
			"mapURL":"https://maps/x.png",
			"receipt":{"distance":"12.4 km","duration":"30 min","vehicleType":"UberGo"}}}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	detail, err := client.FetchTripDetail(context.Background(), testCred(), "t1")
	require.NoError(t, err)
	require.Equal(t, "t1", detail.ID)
	require.Equal(t, "Ramesh", detail.DriverName)
	require.Len(t, detail.Waypoints, 2)
	require.Equal(t, "12.4 km", detail.Receipt.Distance)
}

func TestMissingCredentialAbortsBeforeNetwork(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)

	_, err := client.FetchActivitiesPage(context.Background(), domain.Credential{}, testWindow(), 10, "")
	require.True(t, domain.IsValidation(err))

	_, err = client.FetchBinary(context.Background(), domain.Credential{}, srv.URL+"/doc.pdf")
	require.True(t, domain.IsValidation(err))

	require.Zero(t, hits, "no request leaves the process without a credential")
}

func TestFetchBinaryStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	_, err := client.FetchBinary(context.Background(), testCred(), srv.URL+"/doc.pdf")
	require.True(t, domain.IsUpstream(err))
}

func TestFetchBinarySendsCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "sid=abc", r.Header.Get("Cookie"))
		_, _ = w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	data, err := client.FetchBinary(context.Background(), testCred(), srv.URL+"/doc.pdf")
	require.NoError(t, err)
	require.NotEmpty(t, data)
}

func TestDirectReceiptURLIsTimeStamped(t *testing.T) {
	client := NewClient("https://provider.test", 5*time.Second)
	url := client.DirectReceiptURL("t1")
	require.Contains(t, url, "https://provider.test/trips/t1/receipt?contentType=PDF&t=")
}
