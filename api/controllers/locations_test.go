package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLocationsListsCatalog(t *testing.T) {
	t.Parallel()

	handler := Locations()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/locations", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var payload struct {
		Data struct {
			Locations []locationResponse `json:"locations"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Data.Locations) < 3 {
		t.Fatalf("expected full catalog, got %d entries", len(payload.Data.Locations))
	}

	byKey := map[string]locationResponse{}
	for _, loc := range payload.Data.Locations {
		byKey[loc.Key] = loc
	}
	khauPha, ok := byKey["khau_pha"]
	if !ok {
		t.Fatal("expected khau_pha in catalog")
	}
	if khauPha.WeekendPrice["VND"] != 2_590_000 {
		t.Fatalf("unexpected weekend price %d", khauPha.WeekendPrice["VND"])
	}
	if _, ok := khauPha.Addons["pickup"]; !ok {
		t.Fatal("expected pickup add-on")
	}
}
