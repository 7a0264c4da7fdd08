package integrationtests

import (
	"auction-market/internal/auction"
	"auction-market/internal/bidding"
	model "auction-market/internal/models"
	"auction-market/internal/rating"
	"auction-market/internal/repository"
	"auction-market/internal/server"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// fixedClock pins the current instant so lifecycle decisions are
// deterministic across the whole stack.
type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// testEnv bundles the router with direct repo access for seeding.
type testEnv struct {
	router *httptest.Server
	repo   *repository.MemoryRepo
}

// SetupTestEnv initializes the full HTTP stack over the in-memory
// repository for integration testing.
func SetupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := repository.NewMemoryRepo()
	clock := fixedClock{t: testNow}

	auctionSvc := auction.NewAuctionService(repo, clock)
	biddingSvc := bidding.NewBiddingService(repo, clock)
	ratingSvc := rating.NewRatingService(repo)

	router := server.SetupRouter(auctionSvc, biddingSvc, ratingSvc)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testEnv{router: srv, repo: repo}
}

// SeedAuction stores an auction directly in the repository.
func (e *testEnv) SeedAuction(t *testing.T, a model.Auction) {
	t.Helper()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = testNow.AddDate(0, -1, 0)
	}
	if err := e.repo.CreateAuction(a); err != nil {
		t.Fatalf("failed to seed auction: %v", err)
	}
}

// DoJSON executes an HTTP request as the given identity and parses the
// JSON response envelope.
func (e *testEnv) DoJSON(t *testing.T, method, path string, body any, identity model.Identity) (map[string]any, int) {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		var err error
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	req, err := http.NewRequest(method, e.router.URL+path, bytes.NewReader(reqBody))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if identity.UserID != "" {
		req.Header.Set("X-User-ID", identity.UserID)
	}
	if identity.IsAdmin {
		req.Header.Set("X-User-Admin", "true")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()

	var resp map[string]any
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil && err != io.EOF {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp, res.StatusCode
}

// Data extracts the data object from a response envelope.
func Data(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	data, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("response has no data object: %v", resp)
	}
	return data
}
