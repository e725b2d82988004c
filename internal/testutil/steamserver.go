package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// Game is one app known to a FakeSteam server.
type Game struct {
	ID    uint64
	Name  string
	Price string
}

// FakeSteam serves the store and ProtonDB endpoints the steam client uses.
// Both base URLs point at the same server.
type FakeSteam struct {
	Games []Game

	// SuggestStatus overrides the status of /search/suggest when non-zero
	SuggestStatus int
	// AppHoverStatus overrides the apphover status per app
	AppHoverStatus map[uint64]int
	// NoProton makes ProtonDB answer 404 for the app
	NoProton map[uint64]bool
	// NoDeck makes the Deck report unsuccessful for the app
	NoDeck map[uint64]bool
	// Delay is added to every per-app endpoint
	Delay time.Duration

	SuggestCalls atomic.Int64
	AppCalls     atomic.Int64

	URL string
}

// Start runs the fake on an httptest server closed at test cleanup.
func (f *FakeSteam) Start(t *testing.T) *FakeSteam {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /search/suggest", f.suggest)
	mux.HandleFunc("GET /apphoverpublic/{id}/", f.appHover)
	mux.HandleFunc("GET /api/dlcforapp/", f.dlc)
	mux.HandleFunc("GET /saleaction/ajaxgetdeckappcompatibilityreport", f.deck)
	mux.HandleFunc("GET /api/v1/reports/summaries/{file}", f.proton)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	f.URL = server.URL
	return f
}

func (f *FakeSteam) suggest(w http.ResponseWriter, r *http.Request) {
	f.SuggestCalls.Add(1)
	if f.SuggestStatus != 0 {
		w.WriteHeader(f.SuggestStatus)
		return
	}

	out := make([]map[string]string, 0, len(f.Games))
	for _, g := range f.Games {
		out = append(out, map[string]string{
			"id":    strconv.FormatUint(g.ID, 10),
			"name":  g.Name,
			"price": g.Price,
			"img":   "https://img.example/" + strconv.FormatUint(g.ID, 10) + ".jpg",
			"type":  "game",
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (f *FakeSteam) appHover(w http.ResponseWriter, r *http.Request) {
	id, ok := f.wait(w, r.PathValue("id"))
	if !ok {
		return
	}
	if status := f.AppHoverStatus[id]; status != 0 {
		w.WriteHeader(status)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"strReleaseDate": "Lançamento: 10 out. 2007",
		"strDescription": "Description of app " + strconv.FormatUint(id, 10),
		"ReviewSummary": map[string]any{
			"strReviewSummary": "Muito positivas",
			"cReviews":         1234,
		},
	})
}

func (f *FakeSteam) dlc(w http.ResponseWriter, r *http.Request) {
	if _, ok := f.wait(w, r.URL.Query().Get("appid")); !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": 1,
		"dlc": []map[string]any{{
			"id":             9001,
			"name":           "Soundtrack ",
			"price_overview": map[string]any{"currency": "BRL", "final": 1999, "discount_percent": 0},
			"platforms":      map[string]bool{"windows": true, "mac": false, "linux": true},
		}},
	})
}

func (f *FakeSteam) deck(w http.ResponseWriter, r *http.Request) {
	id, ok := f.wait(w, r.URL.Query().Get("nAppID"))
	if !ok {
		return
	}
	if f.NoDeck[id] {
		writeJSON(w, http.StatusOK, map[string]any{"success": 0})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": 1,
		"results": map[string]any{"resolved_category": 3},
	})
}

func (f *FakeSteam) proton(w http.ResponseWriter, r *http.Request) {
	id, ok := f.wait(w, strings.TrimSuffix(r.PathValue("file"), ".json"))
	if !ok {
		return
	}
	if f.NoProton[id] {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total":        42,
		"tier":         "gold",
		"trendingTier": "platinum",
	})
}

// wait parses the app id and applies Delay
func (f *FakeSteam) wait(w http.ResponseWriter, raw string) (uint64, bool) {
	f.AppCalls.Add(1)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return 0, false
	}
	if f.Delay > 0 {
		time.Sleep(f.Delay)
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
