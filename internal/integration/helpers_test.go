package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stagefront/concert-reservation-system/internal/domain"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string, cookies []*http.Cookie) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indeterministic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		return k == "timestamp" || k == "requestId" || k == "createdAt"
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

func truncateTables(t testing.TB, db *pgxpool.Pool) {
	_, err := db.Exec(context.Background(),
		"TRUNCATE booking_seats, bookings, seats, concert_dates, concerts, users RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}

func seedUser(t testing.TB, db *pgxpool.Pool) {
	var password domain.Password
	require.NoError(t, password.Set(TestUserPassword))

	_, err := db.Exec(context.Background(),
		"INSERT INTO users (username, email, password_hash) VALUES ($1, $2, $3)",
		TestUsername, TestUserEmail, password.Hash)
	require.NoError(t, err)
}

func seedPerformance(t testing.TB, db *pgxpool.Pool, labels ...string) {
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO concerts (id, artist, venue) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING",
		TestConcertId, TestArtist, TestVenue)
	require.NoError(t, err)

	_, err = db.Exec(ctx,
		"INSERT INTO concert_dates (concert_id, date) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		TestConcertId, TestPerformanceDate)
	require.NoError(t, err)

	for _, label := range labels {
		_, err = db.Exec(ctx,
			"INSERT INTO seats (concert_id, date, label, price) VALUES ($1, $2, $3, 50.00)",
			TestConcertId, TestPerformanceDate, label)
		require.NoError(t, err)
	}
}

// loginUser authenticates the seeded test user and returns the session cookies.
func loginUser(t testing.TB, testApp *TestApp) []*http.Cookie {
	body := strings.NewReader(fmt.Sprintf(`{"username": %q, "password": %q}`, TestUsername, TestUserPassword))

	req := httptest.NewRequest(http.MethodPost, "/login", body)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	testApp.App.Routes().ServeHTTP(rec, req)

	res := rec.Result()
	defer res.Body.Close()

	require.Equal(t, http.StatusNoContent, res.StatusCode, "login must succeed before the scenario runs")

	return res.Cookies()
}
