package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goliatone/go-sections/internal/homepage"
	"github.com/goliatone/go-sections/internal/metrics"
	"github.com/goliatone/go-sections/internal/pages"
	"github.com/goliatone/go-sections/internal/tenants"
	"github.com/goliatone/go-sections/internal/variants"
	"github.com/goliatone/go-sections/pkg/testsupport"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestAdminAPI_PageSectionLifecycle(t *testing.T) {
	mux, _ := setupAdminAPI(t)

	createResp := doJSONRequest(t, mux, http.MethodPost, "/admin/api/sites/primary/pages", map[string]any{
		"slug":  "about",
		"title": "About us",
	}, http.StatusCreated)
	var page pages.Page
	decodeJSONBody(t, createResp, &page)
	if page.ID == uuid.Nil || page.SiteKey != "primary" {
		t.Fatalf("unexpected page %+v", page)
	}

	sectionsPath := "/admin/api/sites/primary/pages/" + page.ID.String() + "/sections"
	ids := make([]uuid.UUID, 0, 3)
	for _, body := range []map[string]any{
		{"type": "triple"},
		{"type": "text_image", "fields": map[string]any{"title": "Story", "content": "<p>Hello</p>"}},
		{"type": "black_cta", "fields": map[string]any{"title": "Call us"}},
	} {
		resp := doJSONRequest(t, mux, http.MethodPost, sectionsPath, body, http.StatusCreated)
		var section pages.Section
		decodeJSONBody(t, resp, &section)
		if section.SortOrder != len(ids) {
			t.Fatalf("expected sort order %d got %d", len(ids), section.SortOrder)
		}
		ids = append(ids, section.ID)
	}

	order := []uuid.UUID{ids[2], ids[0], ids[1]}
	reorderResp := doJSONRequest(t, mux, http.MethodPut, sectionsPath+"/order", map[string]any{"order": order}, http.StatusOK)
	var reordered []*pages.Section
	decodeJSONBody(t, reorderResp, &reordered)
	assertSectionOrder(t, reordered, order)

	doJSONRequest(t, mux, http.MethodDelete, sectionsPath+"/"+ids[0].String(), nil, http.StatusNoContent)

	bySlug := doJSONRequest(t, mux, http.MethodGet, "/admin/api/sites/primary/pages?slug=about", nil, http.StatusOK)
	var fetched pages.Page
	decodeJSONBody(t, bySlug, &fetched)
	assertSectionOrder(t, fetched.Sections, []uuid.UUID{ids[2], ids[1]})

	toggleResp := doJSONRequest(t, mux, http.MethodPost, sectionsPath+"/"+ids[1].String()+"/toggle", nil, http.StatusOK)
	var toggled pages.Section
	decodeJSONBody(t, toggleResp, &toggled)
	if toggled.Active {
		t.Fatalf("expected section to be inactive after toggle")
	}
	if toggled.Fields["title"] != "Story" {
		t.Fatalf("expected fields to survive toggle, got %v", toggled.Fields)
	}

	patchResp := doJSONRequest(t, mux, http.MethodPatch, sectionsPath+"/"+ids[1].String(), map[string]any{
		"fields":            map[string]any{"imageAlign": "right"},
		"expected_revision": toggled.Revision,
	}, http.StatusOK)
	var patched pages.Section
	decodeJSONBody(t, patchResp, &patched)
	if patched.Fields["imageAlign"] != "right" || patched.Fields["title"] != "Story" {
		t.Fatalf("expected merged fields, got %v", patched.Fields)
	}

	doJSONRequest(t, mux, http.MethodPatch, sectionsPath+"/"+ids[1].String(), map[string]any{
		"fields":            map[string]any{"title": "Stale"},
		"expected_revision": toggled.Revision,
	}, http.StatusConflict)

	doJSONRequest(t, mux, http.MethodDelete, "/admin/api/sites/primary/pages/"+page.ID.String(), nil, http.StatusNoContent)
	doJSONRequest(t, mux, http.MethodGet, sectionsPath, nil, http.StatusNotFound)
}

func TestAdminAPI_ErrorMapping(t *testing.T) {
	mux, _ := setupAdminAPI(t)

	createResp := doJSONRequest(t, mux, http.MethodPost, "/admin/api/sites/primary/pages", map[string]any{
		"slug":  "services",
		"title": "Services",
	}, http.StatusCreated)
	var page pages.Page
	decodeJSONBody(t, createResp, &page)
	sectionsPath := "/admin/api/sites/primary/pages/" + page.ID.String() + "/sections"

	invalid := doJSONRequest(t, mux, http.MethodPost, sectionsPath, map[string]any{
		"type":   "text_image",
		"fields": map[string]any{"imageAlign": "center"},
	}, http.StatusUnprocessableEntity)
	var validation errorResponse
	decodeJSONBody(t, invalid, &validation)
	if validation.Error != "validation_failed" || len(validation.Issues) == 0 {
		t.Fatalf("expected validation issues, got %+v", validation)
	}

	doJSONRequest(t, mux, http.MethodPost, sectionsPath, map[string]any{"type": "accordion"}, http.StatusUnprocessableEntity)
	doJSONRequest(t, mux, http.MethodPost, "/admin/api/sites/primary/pages", map[string]any{
		"slug":  "services",
		"title": "Duplicate",
	}, http.StatusConflict)
	doJSONRequest(t, mux, http.MethodGet, "/admin/api/sites/unknown/pages", nil, http.StatusNotFound)
	doJSONRequest(t, mux, http.MethodGet, "/admin/api/sites/primary/pages/not-a-uuid", nil, http.StatusBadRequest)
	doJSONRequest(t, mux, http.MethodGet, "/admin/api/sites/secondary/pages/"+page.ID.String(), nil, http.StatusNotFound)
	doJSONRequest(t, mux, http.MethodPost, "/admin/api/sites/primary/pages", map[string]any{
		"slug":    "x",
		"title":   "X",
		"unknown": true,
	}, http.StatusBadRequest)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/api/sites/primary/pages", strings.NewReader("{"))
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected malformed JSON to yield 400 got %d", rec.Code)
	}

	section := doJSONRequest(t, mux, http.MethodPost, sectionsPath, map[string]any{"type": "numbers"}, http.StatusCreated)
	var created pages.Section
	decodeJSONBody(t, section, &created)
	stranger := uuid.New()
	mismatch := doJSONRequest(t, mux, http.MethodPut, sectionsPath+"/order", map[string]any{
		"order": []uuid.UUID{stranger},
	}, http.StatusConflict)
	var mismatchBody errorResponse
	decodeJSONBody(t, mismatch, &mismatchBody)
	if mismatchBody.Error != "reorder_mismatch" {
		t.Fatalf("expected reorder_mismatch got %q", mismatchBody.Error)
	}
	if len(mismatchBody.Missing) != 1 || mismatchBody.Missing[0] != created.ID {
		t.Fatalf("expected missing %s got %v", created.ID, mismatchBody.Missing)
	}
	if len(mismatchBody.Extra) != 1 || mismatchBody.Extra[0] != stranger {
		t.Fatalf("expected extra %s got %v", stranger, mismatchBody.Extra)
	}
}

func TestAdminAPI_HomepageSections(t *testing.T) {
	mux, _ := setupAdminAPI(t)

	raw, err := testsupport.LoadFixture("testdata/homepage_section.json")
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}

	collection := "/admin/api/sites/primary/homepage-sections"
	createResp := doJSONRequest(t, mux, http.MethodPost, collection, body, http.StatusCreated)
	var first homepage.Section
	decodeJSONBody(t, createResp, &first)
	if len(first.Cards) != 2 {
		t.Fatalf("expected 2 cards got %d", len(first.Cards))
	}
	if strings.Contains(first.Cards[0].Content, "script") {
		t.Fatalf("expected card content to be sanitised, got %q", first.Cards[0].Content)
	}
	if first.Cards[0].Style != variants.StylePrimary {
		t.Fatalf("expected default card style got %q", first.Cards[0].Style)
	}

	secondResp := doJSONRequest(t, mux, http.MethodPost, collection, map[string]any{
		"identifier": "contact",
		"title":      "Contact",
	}, http.StatusCreated)
	var second homepage.Section
	decodeJSONBody(t, secondResp, &second)

	doJSONRequest(t, mux, http.MethodPost, collection, map[string]any{
		"identifier": "contact",
		"title":      "Again",
	}, http.StatusConflict)

	lookup := doJSONRequest(t, mux, http.MethodGet, collection+"?identifier=why-us", nil, http.StatusOK)
	var found homepage.Section
	decodeJSONBody(t, lookup, &found)
	if found.ID != first.ID {
		t.Fatalf("expected identifier lookup to return %s got %s", first.ID, found.ID)
	}

	reorderResp := doJSONRequest(t, mux, http.MethodPut, collection+"/order", map[string]any{
		"order": []uuid.UUID{second.ID, first.ID},
	}, http.StatusOK)
	var reordered []*homepage.Section
	decodeJSONBody(t, reorderResp, &reordered)
	if len(reordered) != 2 || reordered[0].ID != second.ID || reordered[0].SortOrder != 0 {
		t.Fatalf("unexpected order after reorder: %+v", reordered)
	}

	cardsPath := collection + "/" + first.ID.String() + "/cards"
	doJSONRequest(t, mux, http.MethodPut, cardsPath, map[string]any{
		"cards": []any{map[string]any{"title": "Only", "style": "tertiary"}},
	}, http.StatusUnprocessableEntity)
	doJSONRequest(t, mux, http.MethodPut, cardsPath, map[string]any{
		"cards": []any{map[string]any{"title": "Only"}},
	}, http.StatusOK)
	cardsResp := doJSONRequest(t, mux, http.MethodGet, cardsPath, nil, http.StatusOK)
	var cards []variants.Card
	decodeJSONBody(t, cardsResp, &cards)
	if len(cards) != 1 || cards[0].Title != "Only" {
		t.Fatalf("expected replaced cards, got %+v", cards)
	}

	toggleResp := doJSONRequest(t, mux, http.MethodPost, collection+"/"+second.ID.String()+"/toggle", nil, http.StatusOK)
	var toggled homepage.Section
	decodeJSONBody(t, toggleResp, &toggled)
	if toggled.Active || toggled.Title != "Contact" {
		t.Fatalf("expected toggle to flip only active, got %+v", toggled)
	}

	doJSONRequest(t, mux, http.MethodPatch, collection+"/"+first.ID.String(), map[string]any{
		"identifier": "renamed",
	}, http.StatusBadRequest)

	doJSONRequest(t, mux, http.MethodDelete, collection+"/"+second.ID.String(), nil, http.StatusNoContent)
	listResp := doJSONRequest(t, mux, http.MethodGet, collection, nil, http.StatusOK)
	var remaining []*homepage.Section
	decodeJSONBody(t, listResp, &remaining)
	if len(remaining) != 1 || remaining[0].ID != first.ID || remaining[0].SortOrder != 0 {
		t.Fatalf("expected compacted list, got %+v", remaining)
	}

	doJSONRequest(t, mux, http.MethodGet, "/admin/api/sites/secondary/homepage-sections/"+first.ID.String(), nil, http.StatusNotFound)
}

func TestAdminAPI_SitesAndMetrics(t *testing.T) {
	mux, registry := setupAdminAPI(t)

	resp := doJSONRequest(t, mux, http.MethodGet, "/admin/api/sites", nil, http.StatusOK)
	var sites []*tenants.Site
	decodeJSONBody(t, resp, &sites)
	if len(sites) != 2 {
		t.Fatalf("expected 2 sites got %d", len(sites))
	}

	doJSONRequest(t, mux, http.MethodGet, "/admin/api/sites/primary/pages", nil, http.StatusOK)
	count, err := testutil.GatherAndCount(registry, "sections_http_requests_total")
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 request series got %d", count)
	}
}

func TestAdminAPI_NilServicesReturnUnavailable(t *testing.T) {
	mux := http.NewServeMux()
	if err := NewAdminAPI().Register(mux); err != nil {
		t.Fatalf("register: %v", err)
	}
	doJSONRequest(t, mux, http.MethodGet, "/admin/api/sites/primary/pages", nil, http.StatusServiceUnavailable)
	doJSONRequest(t, mux, http.MethodGet, "/admin/api/sites", nil, http.StatusServiceUnavailable)
}

func TestAdminAPI_RegisterRequiresMux(t *testing.T) {
	if err := NewAdminAPI().Register(nil); err == nil {
		t.Fatalf("expected error for nil mux")
	}
}

func setupAdminAPI(t *testing.T) (*http.ServeMux, *prometheus.Registry) {
	t.Helper()
	ctx := context.Background()

	sites := tenants.NewService(tenants.NewMemoryRepository())
	if err := sites.EnsureSites(ctx, []tenants.CreateSiteInput{
		{Key: "primary", Name: "Primary"},
		{Key: "secondary", Name: "Secondary"},
	}); err != nil {
		t.Fatalf("ensure sites: %v", err)
	}

	registry := prometheus.NewRegistry()
	recorder := metrics.NewPrometheus(registry)

	pageSvc := pages.NewService(pages.NewMemoryRepository(),
		pages.WithSiteResolver(sites),
		pages.WithMetrics(recorder),
	)
	homepageSvc := homepage.NewService(homepage.NewMemoryRepository(),
		homepage.WithSiteResolver(sites),
		homepage.WithMetrics(recorder),
	)

	api := NewAdminAPI(
		WithSiteService(sites),
		WithPageService(pageSvc),
		WithHomepageService(homepageSvc),
		WithMetrics(recorder),
	)
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		t.Fatalf("register admin api: %v", err)
	}
	return mux, registry
}

func assertSectionOrder(t *testing.T, sections []*pages.Section, want []uuid.UUID) {
	t.Helper()
	if len(sections) != len(want) {
		t.Fatalf("expected %d sections got %d", len(want), len(sections))
	}
	for i, section := range sections {
		if section.ID != want[i] {
			t.Fatalf("position %d: expected %s got %s", i, want[i], section.ID)
		}
		if section.SortOrder != i {
			t.Fatalf("position %d: expected sort order %d got %d", i, i, section.SortOrder)
		}
	}
}

func doJSONRequest(t *testing.T, mux *http.ServeMux, method, path string, body any, wantStatus int) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != wantStatus {
		t.Fatalf("expected status %d got %d (%s)", wantStatus, rec.Code, rec.Body.String())
	}
	return rec
}

func decodeJSONBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
