package transfer

import (
	"encoding/json"
	"testing"
)

func TestIDListUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"array", `{"tweet_ids":["1","2"]}`, []string{"1", "2"}},
		{"single string", `{"tweet_ids":"190"}`, []string{"190"}},
		{"empty array", `{"tweet_ids":[]}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req AnalyticsRequest
			if err := json.Unmarshal([]byte(tt.in), &req); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if len(req.TweetIDs) != len(tt.want) {
				t.Fatalf("ids = %v, want %v", req.TweetIDs, tt.want)
			}
			for i := range tt.want {
				if req.TweetIDs[i] != tt.want[i] {
					t.Errorf("ids[%d] = %q, want %q", i, req.TweetIDs[i], tt.want[i])
				}
			}
		})
	}
}

func TestIDListRejectsGarbage(t *testing.T) {
	var req AnalyticsRequest
	if err := json.Unmarshal([]byte(`{"tweet_ids":42}`), &req); err == nil {
		t.Fatal("expected error for numeric tweet_ids")
	}
}
