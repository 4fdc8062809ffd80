//go:build e2e && unix

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

type city struct {
	Name        string `json:"name"`
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
}

var cities = []city{
	{"Paris", "France", "FR"},
	{"Parma", "Italy", "IT"},
	{"Paramaribo", "Suriname", "SR"},
	{"Paraná", "Argentina", "AR"},
	{"Parintins", "Brazil", "BR"},
	{"Parkes", "Australia", "AU"},
	{"Parla", "Spain", "ES"},
	{"Parnu", "Estonia", "EE"},
}

// fakeGeoDB serves the cities endpoint from the fixed list above
type fakeGeoDB struct {
	*httptest.Server

	mu      sync.Mutex
	offsets []int
	fail    bool
}

func newFakeGeoDB(t *testing.T) *fakeGeoDB {
	t.Helper()
	f := &fakeGeoDB{}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

// URL of the cities endpoint
func (f *fakeGeoDB) CitiesURL() string {
	return f.Server.URL + "/v1/geo/cities"
}

func (f *fakeGeoDB) Offsets() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.offsets...)
}

func (f *fakeGeoDB) SetFail(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = fail
}

func (f *fakeGeoDB) serve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	prefix := strings.ToLower(q.Get("namePrefix"))

	f.mu.Lock()
	f.offsets = append(f.offsets, offset)
	fail := f.fail
	f.mu.Unlock()

	if fail {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		return
	}

	var matched []city
	for _, c := range cities {
		if strings.HasPrefix(strings.ToLower(c.Name), prefix) {
			matched = append(matched, c)
		}
	}

	data := []city{}
	for i := offset; i < offset+limit && i < len(matched); i++ {
		data = append(data, matched[i])
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data": data,
		"metadata": map[string]int{
			"currentOffset": offset,
			"totalCount":    len(matched),
		},
	})
}
