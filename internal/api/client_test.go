package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"slate-cli/internal/model"
)

func TestQueryNormalizesColumnsToFieldNames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/shots/query" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var filter map[string]any
		if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
			t.Errorf("decode filter: %v", err)
		}
		if filter["project_id"] != float64(12) {
			t.Errorf("filter project_id = %v", filter["project_id"])
		}
		_, _ = w.Write([]byte(`[{"id":101,"shot_name":"SH010","status":"ip","frame_in":1001}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "ada@example.com")
	recs, err := c.Query(context.Background(), model.KindShot, Filter{ProjectID: 12})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	rec := recs[0]
	if rec.Str("name") != "SH010" {
		t.Fatalf("name = %q, want SH010 (normalized from shot_name)", rec.Str("name"))
	}
	if _, ok := rec["shot_name"]; ok {
		t.Fatal("raw column shot_name survived normalization")
	}
	if rec.ID() != 101 || rec.Str("status") != "ip" {
		t.Fatalf("record = %v", rec)
	}
}

func TestQueryEmptyResultIsNonNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	recs, err := New(srv.URL, "").Query(context.Background(), model.KindShot, Filter{ProjectID: 1})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if recs == nil {
		t.Fatal("Query returned nil slice")
	}
}

func TestUpdateFieldPayloadAndHeaders(t *testing.T) {
	var gotPath string
	var payload map[string]any
	var reqID, actor string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		reqID = r.Header.Get("X-Request-ID")
		actor = r.Header.Get("X-Actor-Email")
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}))
	defer srv.Close()

	c := New(srv.URL, "ada@example.com")
	if err := c.UpdateField(context.Background(), model.KindAsset, 7, "asset_name", "Boulder"); err != nil {
		t.Fatalf("UpdateField: %v", err)
	}
	if gotPath != "/api/v1/assets/update" {
		t.Fatalf("path = %q", gotPath)
	}
	if payload["id"] != float64(7) || payload["field"] != "asset_name" || payload["value"] != "Boulder" {
		t.Fatalf("payload = %v, want {id, field, value}", payload)
	}
	if reqID == "" {
		t.Fatal("missing X-Request-ID")
	}
	if actor != "ada@example.com" {
		t.Fatalf("X-Actor-Email = %q", actor)
	}
}

func TestCreateReturnsNormalizedRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/assets/create" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data":{"id":9,"asset_name":"Rock","asset_type":"prop"}}`))
	}))
	defer srv.Close()

	rec, err := New(srv.URL, "").Create(context.Background(), model.KindAsset, model.Record{"asset_name": "Rock"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.ID() != 9 || rec.Str("name") != "Rock" || rec.Str("type") != "prop" {
		t.Fatalf("record = %v", rec)
	}
}

func TestDeleteSendsActorHint(t *testing.T) {
	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&payload)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, "ada@example.com")
	err := c.Delete(context.Background(), model.KindNote, 3, DeleteOpts{ActorEmail: "ada@example.com", Permission: "manager"})
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if payload["id"] != float64(3) || payload["email"] != "ada@example.com" || payload["permission"] != "manager" {
		t.Fatalf("payload = %v", payload)
	}
}

func TestAPIErrorCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"permission denied"}`))
	}))
	defer srv.Close()

	err := New(srv.URL, "").UpdateField(context.Background(), model.KindShot, 1, "status", "ip")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T %v, want *APIError", err, err)
	}
	if apiErr.Status != http.StatusForbidden || apiErr.Message != "permission denied" {
		t.Fatalf("apiErr = %+v", apiErr)
	}
}

func TestAPIErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := New(srv.URL, "").UpdateField(context.Background(), model.KindShot, 1, "status", "ip")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T, want *APIError", err)
	}
	if apiErr.Status != http.StatusInternalServerError || apiErr.Message != "" {
		t.Fatalf("apiErr = %+v", apiErr)
	}
}

func TestClientRequiresBaseURL(t *testing.T) {
	c := New("", "")
	if _, err := c.Query(context.Background(), model.KindShot, Filter{}); !errors.Is(err, ErrNoBaseURL) {
		t.Fatalf("err = %v, want ErrNoBaseURL", err)
	}
}
