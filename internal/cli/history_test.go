package cli

import (
	"testing"

	leetcli "github.com/leetcli/leetcli/internal"
)

func testFeed() []leetcli.Submission {
	return []leetcli.Submission{
		{ID: "1", TitleSlug: "two-sum", Title: "Two Sum", Lang: "python3", StatusDisplay: "Accepted"},
		{ID: "2", TitleSlug: "two-sum", Title: "Two Sum", Lang: "python3", StatusDisplay: "Wrong Answer"},
		{ID: "3", TitleSlug: "add-two-numbers", Title: "Add Two Numbers", Lang: "golang", StatusDisplay: "Accepted"},
		{ID: "4", TitleSlug: "lru-cache", Title: "LRU Cache", Lang: "cpp", StatusDisplay: "Time Limit Exceeded"},
	}
}

func TestFilterSubmissions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		slug    string
		status  string
		lang    string
		wantIDs []string
	}{
		{name: "no filters", wantIDs: []string{"1", "2", "3", "4"}},
		{name: "by slug", slug: "two-sum", wantIDs: []string{"1", "2"}},
		{name: "status alias ac", status: "ac", wantIDs: []string{"1", "3"}},
		{name: "status alias wa", status: "wa", wantIDs: []string{"2"}},
		{name: "status alias tle", status: "tle", wantIDs: []string{"4"}},
		{name: "full status string", status: "Accepted", wantIDs: []string{"1", "3"}},
		{name: "lang alias go", lang: "go", wantIDs: []string{"3"}},
		{name: "lang alias c++", lang: "c++", wantIDs: []string{"4"}},
		{name: "combined", slug: "two-sum", status: "accepted", lang: "python", wantIDs: []string{"1"}},
		{name: "no match", slug: "two-sum", lang: "rust", wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := filterSubmissions(testFeed(), tt.slug, tt.status, tt.lang)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d submissions, want %d", len(got), len(tt.wantIDs))
			}
			for i, s := range got {
				if s.ID != tt.wantIDs[i] {
					t.Errorf("result[%d].ID = %q, want %q", i, s.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestOrAll(t *testing.T) {
	t.Parallel()
	if got := orAll(""); got != "all" {
		t.Errorf("orAll(\"\") = %q, want \"all\"", got)
	}
	if got := orAll("two-sum"); got != "two-sum" {
		t.Errorf("orAll(\"two-sum\") = %q, want \"two-sum\"", got)
	}
}

func TestHistoryCacheKey(t *testing.T) {
	t.Parallel()

	if got := historyCacheKey("alice", "", "", "", 20); got != "submissions_alice_all_all_all_20" {
		t.Errorf("key = %q", got)
	}
	if got := historyCacheKey("alice", "two-sum", "ac", "go", 50); got != "submissions_alice_two-sum_ac_go_50" {
		t.Errorf("key = %q", got)
	}

	// Different accounts and different limits must never share a key.
	if historyCacheKey("alice", "", "", "", 20) == historyCacheKey("bob", "", "", "", 20) {
		t.Error("accounts must have distinct cache keys")
	}
	if historyCacheKey("alice", "", "", "", 20) == historyCacheKey("alice", "", "", "", 100) {
		t.Error("a truncated feed must not be served to a larger limit")
	}
}
