package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"TrendSentinel/internal/model"
)

func TestFetchSeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/datalab/search" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("X-Naver-Client-Id") != "id" || r.Header.Get("X-Naver-Client-Secret") != "secret" {
			t.Error("missing credential headers")
		}
		var req datalabRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.TimeUnit != "week" {
			t.Errorf("timeUnit = %s, want week", req.TimeUnit)
		}
		if len(req.KeywordGroups) != 1 || req.KeywordGroups[0].GroupName != "캠핑용품" {
			t.Errorf("keyword groups = %+v", req.KeywordGroups)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"title":"캠핑용품","keywords":["캠핑용품"],
			"data":[{"period":"2026-03-01","ratio":55.2},{"period":"2026-03-08","ratio":"61.7"},{"period":"2026-03-15","ratio":null}]}]}`))
	}))
	defer srv.Close()

	f := NewDataLabFetcher("id", "secret", srv.URL, "")
	bundles, err := f.FetchSeries(context.Background(), []string{"캠핑용품"}, testWindow(180, model.GranularityWeek))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(bundles) != 1 {
		t.Fatalf("got %d bundles, want 1", len(bundles))
	}
	b := bundles[0]
	if b.KeywordGroup != "캠핑용품" || b.Source != model.SourceLive {
		t.Errorf("bundle = %+v", b)
	}
	// The null ratio point is dropped.
	if len(b.Points) != 2 {
		t.Fatalf("got %d points, want 2", len(b.Points))
	}
	if b.Points[0].Value != 55.2 || b.Points[1].Value != 61.7 {
		t.Errorf("points = %+v", b.Points)
	}
}

func TestFetchSeries_FlatShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data":[{"period":"2026-03-01","ratio":40},{"period":"2026-03-08","ratio":50}]}`))
	}))
	defer srv.Close()

	f := NewDataLabFetcher("id", "secret", srv.URL, "")
	bundles, err := f.FetchSeries(context.Background(), []string{"등산화"}, testWindow(30, model.GranularityDay))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(bundles) != 1 || bundles[0].KeywordGroup != "등산화" {
		t.Fatalf("bundles = %+v", bundles)
	}
	if len(bundles[0].Points) != 2 {
		t.Errorf("got %d points, want 2", len(bundles[0].Points))
	}
}

func TestFetchSeries_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"errorMessage":"quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f := NewDataLabFetcher("id", "secret", srv.URL, "")
	if _, err := f.FetchSeries(context.Background(), []string{"a"}, testWindow(30, model.GranularityDay)); err == nil {
		t.Error("expected error for non-200 status")
	}

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer empty.Close()

	f = NewDataLabFetcher("id", "secret", empty.URL, "")
	if _, err := f.FetchSeries(context.Background(), []string{"a"}, testWindow(30, model.GranularityDay)); err == nil {
		t.Error("expected error for empty result set")
	}
}

func TestFetchSeries_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	f := NewDataLabFetcher("id", "secret", srv.URL, "")
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := f.FetchSeries(ctx, []string{"a"}, testWindow(30, model.GranularityDay)); err == nil {
		t.Error("expected context deadline error")
	}
}
