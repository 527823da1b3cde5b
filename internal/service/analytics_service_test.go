package service

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/maheshrc27/marketeer/internal/transfer"
)

func validAnalyticsRequest() *transfer.AnalyticsRequest {
	return &transfer.AnalyticsRequest{
		TweetIDs:  transfer.IDList{"111", "222"},
		StartTime: "2025-01-01T00:00:00Z",
		EndTime:   "2025-01-08T00:00:00Z",
	}
}

func TestBuildAnalyticsQueryDefaults(t *testing.T) {
	query, err := buildAnalyticsQuery(validAnalyticsRequest())
	if err != nil {
		t.Fatalf("buildAnalyticsQuery: %v", err)
	}

	if query.Granularity != "total" {
		t.Errorf("granularity = %q, want total", query.Granularity)
	}
	if len(query.Fields) != len(defaultAnalyticsFields) {
		t.Errorf("fields = %v, want defaults", query.Fields)
	}
	if len(query.IDs) != 2 {
		t.Errorf("ids = %v", query.IDs)
	}
}

func TestBuildAnalyticsQueryTrimsAndTruncatesIDs(t *testing.T) {
	req := validAnalyticsRequest()
	req.TweetIDs = transfer.IDList{" 111 ", "", "  "}
	for i := 0; i < 150; i++ {
		req.TweetIDs = append(req.TweetIDs, fmt.Sprintf("%d", i))
	}

	query, err := buildAnalyticsQuery(req)
	if err != nil {
		t.Fatalf("buildAnalyticsQuery: %v", err)
	}
	if len(query.IDs) != maxAnalyticsIDs {
		t.Errorf("ids = %d, want %d", len(query.IDs), maxAnalyticsIDs)
	}
	if query.IDs[0] != "111" {
		t.Errorf("ids[0] = %q, want trimmed 111", query.IDs[0])
	}
}

func TestBuildAnalyticsQueryValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*transfer.AnalyticsRequest)
	}{
		{"empty ids", func(r *transfer.AnalyticsRequest) { r.TweetIDs = nil }},
		{"whitespace ids", func(r *transfer.AnalyticsRequest) { r.TweetIDs = transfer.IDList{"  ", ""} }},
		{"missing start", func(r *transfer.AnalyticsRequest) { r.StartTime = "" }},
		{"missing end", func(r *transfer.AnalyticsRequest) { r.EndTime = "" }},
		{"bad timestamp", func(r *transfer.AnalyticsRequest) { r.StartTime = "2025-01-01 00:00:00" }},
		{"offset timestamp", func(r *transfer.AnalyticsRequest) { r.EndTime = "2025-01-08T00:00:00+02:00" }},
		{"bad granularity", func(r *transfer.AnalyticsRequest) { r.Granularity = "monthly" }},
		{"unknown field", func(r *transfer.AnalyticsRequest) { r.Fields = []string{"impressions", "bogus"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validAnalyticsRequest()
			tt.mutate(req)

			_, err := buildAnalyticsQuery(req)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestBuildAnalyticsQueryAcceptsEveryGranularity(t *testing.T) {
	for _, granularity := range validGranularities {
		req := validAnalyticsRequest()
		req.Granularity = granularity

		query, err := buildAnalyticsQuery(req)
		if err != nil {
			t.Errorf("granularity %q rejected: %v", granularity, err)
			continue
		}
		if query.Granularity != granularity {
			t.Errorf("granularity = %q, want %q", query.Granularity, granularity)
		}
	}
}

func TestBuildAnalyticsQueryKeepsExplicitFields(t *testing.T) {
	req := validAnalyticsRequest()
	req.Fields = []string{"impressions", "likes", "url_clicks"}

	query, err := buildAnalyticsQuery(req)
	if err != nil {
		t.Fatalf("buildAnalyticsQuery: %v", err)
	}
	if strings.Join(query.Fields, ",") != "impressions,likes,url_clicks" {
		t.Errorf("fields = %v", query.Fields)
	}
}

func TestDefaultFieldsAreAllAvailable(t *testing.T) {
	for _, field := range defaultAnalyticsFields {
		if !slices.Contains(availableAnalyticsFields, field) {
			t.Errorf("default field %q is not in the available set", field)
		}
	}
}
