package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type sample struct {
	Name  string             `json:"name" validate:"required"`
	Kind  string             `json:"kind" validate:"omitempty,oneof=a b"`
	Inner *sampleInner       `json:"inner" validate:"required"`
	Costs map[string]float64 `json:"costs" validate:"dive,gte=0"`
}

type sampleInner struct {
	Rate float64 `json:"rate" validate:"gt=0"`
}

func TestValidatorStructUsesJSONNames(t *testing.T) {
	v := NewValidator()
	v.Struct(&sample{Kind: "c", Inner: &sampleInner{}, Costs: map[string]float64{"dental": -1}})

	issues := v.Issues()
	got := map[string]string{}
	for _, issue := range issues {
		got[issue.Field] = issue.Reason
	}
	want := map[string]string{
		"name":          "is required",
		"kind":          "must be one of: a, b",
		"inner.rate":    "must be greater than 0",
		"costs[dental]": "must be at least 0",
	}
	for field, reason := range want {
		if got[field] != reason {
			t.Fatalf("field %s: expected %q, got %q (all: %+v)", field, reason, got[field], issues)
		}
	}
}

func TestValidatorRejectWritesEnvelope(t *testing.T) {
	v := NewValidator()
	v.Add("period.id", "is required")

	rec := httptest.NewRecorder()
	if !v.Reject(rec, "req-1") {
		t.Fatal("expected reject")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				Fields []ValidationIssue `json:"fields"`
			} `json:"details"`
		} `json:"error"`
		RequestID string `json:"requestId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "validation_error" || len(body.Error.Details.Fields) != 1 || body.RequestID != "req-1" {
		t.Fatalf("unexpected envelope %s", rec.Body.String())
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst sample
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
	if DecodeJSON(rec, req, &dst, "") || rec.Code != http.StatusBadRequest {
		t.Fatalf("expected invalid payload, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat(" ", 64)+"{}"))
	req.Body = http.MaxBytesReader(rec, req.Body, 16)
	if DecodeJSON(rec, req, &dst, "") || rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected payload too large, got %d", rec.Code)
	}
}
