package bot

import (
	"fmt"
	"strings"
	"testing"
)

func manyEntries(n int) []entry {
	entries := make([]entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, entry{
			Name:      fmt.Sprintf("Game %02d", i),
			LinkURL:   fmt.Sprintf("https://store.example/%d", i),
			Hours:     n - i,
			HeaderURL: fmt.Sprintf("https://header.example/%d.jpg", i),
		})
	}
	return entries
}

func TestRenderPageSplitsIntoPages(t *testing.T) {
	entries := manyEntries(25)

	first := renderPage(entries, 0)
	if first.TotalPages != 3 {
		t.Fatalf("expected 3 pages for 25 entries, got %d", first.TotalPages)
	}
	if got := strings.Count(first.Body, "\n"); got != pageSize {
		t.Fatalf("expected %d rows on first page, got %d", pageSize, got)
	}

	last := renderPage(entries, 2)
	if got := strings.Count(last.Body, "\n"); got != 5 {
		t.Fatalf("expected 5 rows on last page, got %d", got)
	}
	if last.Total != 25 {
		t.Fatalf("expected total 25, got %d", last.Total)
	}
}

func TestRenderPageClampsOutOfRange(t *testing.T) {
	entries := manyEntries(12)

	if got := renderPage(entries, -5).Index; got != 0 {
		t.Fatalf("expected negative page clamped to 0, got %d", got)
	}
	if got := renderPage(entries, 99).Index; got != 1 {
		t.Fatalf("expected overflow page clamped to last, got %d", got)
	}
}

func TestRenderPageEmpty(t *testing.T) {
	p := renderPage(nil, 0)
	if p.TotalPages != 1 || p.Index != 0 || p.Body != "" {
		t.Fatalf("unexpected empty page: %+v", p)
	}
}

func TestRenderPageUsesFirstRowHeader(t *testing.T) {
	entries := manyEntries(15)

	second := renderPage(entries, 1)
	if second.ImageURL != entries[pageSize].HeaderURL {
		t.Fatalf("expected second page image from its first row, got %s", second.ImageURL)
	}
}

func TestFormatHours(t *testing.T) {
	cases := map[int]string{
		0:  "Less than one hour",
		1:  "1 hour",
		2:  "2 hours",
		40: "40 hours",
	}
	for hours, want := range cases {
		if got := formatHours(hours); got != want {
			t.Errorf("formatHours(%d) = %q, want %q", hours, got, want)
		}
	}
}

func TestEntriesFromAccountSortsByPlaytime(t *testing.T) {
	account := AccountResponse{Games: map[string]GameResponse{
		"Portal":    {PlaytimeForever: 90, StoreURL: "https://store.example/400"},
		"Half-Life": {PlaytimeForever: 600, StoreURL: "https://store.example/70", HeaderURL: "https://header.example/70.jpg"},
	}}

	entries := entriesFromAccount(account)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "Half-Life" || entries[0].Hours != 10 {
		t.Fatalf("expected Half-Life first with 10 hours, got %+v", entries[0])
	}
	if entries[1].Hours != 1 {
		t.Fatalf("expected Portal with 1 hour, got %+v", entries[1])
	}
}

func TestEntriesFromSearchLinksProfiles(t *testing.T) {
	result := SearchResponse{
		HeaderURL: "https://header.example/70.jpg",
		Users: []OwnerResponse{
			{Username: "alice", ProfileURL: "https://profiles.example/alice", Playtime: 30},
			{Username: "bob", ProfileURL: "https://profiles.example/bob", Playtime: 600},
		},
	}

	entries := entriesFromSearch(result)
	if entries[0].Name != "bob" {
		t.Fatalf("expected bob first, got %+v", entries[0])
	}
	if entries[0].LinkURL != "https://profiles.example/bob" {
		t.Fatalf("expected profile link, got %s", entries[0].LinkURL)
	}
	if entries[0].HeaderURL != result.HeaderURL {
		t.Fatalf("expected shared header url, got %s", entries[0].HeaderURL)
	}
}

func TestCustomIDRoundTrip(t *testing.T) {
	ref := pageRef{Kind: "search", Query: "Half-Life", Page: 2}

	next, ok := parseCustomID(ref.customID("next"))
	if !ok {
		t.Fatal("expected next id to parse")
	}
	if next.Kind != "search" || next.Query != "Half-Life" || next.Page != 3 {
		t.Fatalf("unexpected next ref: %+v", next)
	}

	prev, ok := parseCustomID(ref.customID("prev"))
	if !ok {
		t.Fatal("expected prev id to parse")
	}
	if prev.Page != 1 {
		t.Fatalf("unexpected prev page: %d", prev.Page)
	}
}

func TestCustomIDStripsPipesFromQuery(t *testing.T) {
	ref := pageRef{Kind: "games", Query: "odd|name", Page: 0}

	parsed, ok := parseCustomID(ref.customID("next"))
	if !ok {
		t.Fatal("expected id to parse")
	}
	if parsed.Query != "oddname" {
		t.Fatalf("expected pipes stripped, got %q", parsed.Query)
	}
}

func TestParseCustomIDMalformed(t *testing.T) {
	for _, id := range []string{"", "games|next", "games|sideways|x|0", "games|next|x|NaN"} {
		if _, ok := parseCustomID(id); ok {
			t.Errorf("expected %q to be rejected", id)
		}
	}
}
