package domain

import (
	"testing"
	"time"

	"steam-library-service/internal/timeutil"
)

func TestFreshAt(t *testing.T) {
	now := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)
	ttl := time.Hour

	cases := []struct {
		name        string
		lastUpdated string
		want        bool
	}{
		{"just refreshed", timeutil.FormatTimestamp(now), true},
		{"within window", timeutil.FormatTimestamp(now.Add(-59 * time.Minute)), true},
		{"exactly at threshold", timeutil.FormatTimestamp(now.Add(-time.Hour)), false},
		{"beyond threshold", timeutil.FormatTimestamp(now.Add(-2 * time.Hour)), false},
		{"missing", "", false},
		{"unparseable", "garbage", false},
		{"naive timestamp read as UTC", "2024-01-02T11:30:00", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			acct := Account{LastUpdated: tc.lastUpdated}
			if got := acct.FreshAt(now, ttl); got != tc.want {
				t.Fatalf("FreshAt(%q) = %v, want %v", tc.lastUpdated, got, tc.want)
			}
		})
	}
}

func TestFreshAtConfigurableTTL(t *testing.T) {
	now := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)
	acct := Account{LastUpdated: timeutil.FormatTimestamp(now.Add(-30 * time.Minute))}

	if !acct.FreshAt(now, time.Hour) {
		t.Fatal("expected fresh with 1h ttl")
	}
	if acct.FreshAt(now, 10*time.Minute) {
		t.Fatal("expected stale with 10m ttl")
	}
}

func TestDerivedURLsDeterministic(t *testing.T) {
	first := IconURL(440, "e3f595a92552da3d664ad00277fad2107345f743")
	second := IconURL(440, "e3f595a92552da3d664ad00277fad2107345f743")
	if first != second {
		t.Fatalf("expected identical URLs, got %q and %q", first, second)
	}
	if first != "http://media.steampowered.com/steamcommunity/public/images/apps/440/e3f595a92552da3d664ad00277fad2107345f743.jpg" {
		t.Fatalf("unexpected icon url: %s", first)
	}

	if got := HeaderURL(440); got != "https://steamcdn-a.akamaihd.net/steam/apps/440/header.jpg" {
		t.Fatalf("unexpected header url: %s", got)
	}
	if got := StoreURL(440); got != "https://store.steampowered.com/app/440/" {
		t.Fatalf("unexpected store url: %s", got)
	}
	if got := ProfileURL("76561197960287930"); got != "https://steamcommunity.com/profiles/76561197960287930" {
		t.Fatalf("unexpected profile url: %s", got)
	}
}

func TestNormalizeUsername(t *testing.T) {
	if got := NormalizeUsername("Gabe Newell"); got != "Gabe_Newell" {
		t.Fatalf("expected spaces replaced, got %s", got)
	}
	if got := NormalizeUsername("plain"); got != "plain" {
		t.Fatalf("expected untouched name, got %s", got)
	}
}

func TestNewLibraryEmpty(t *testing.T) {
	lib := NewLibrary()
	if lib.Accounts == nil {
		t.Fatal("expected non-nil accounts map")
	}
	if len(lib.Accounts) != 0 {
		t.Fatalf("expected empty accounts, got %d", len(lib.Accounts))
	}
}
