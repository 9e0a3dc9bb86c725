package bot

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const pageSize = 10

// entry is one row of a paginated listing: a linked name and hours played.
type entry struct {
	Name      string
	LinkURL   string
	Hours     int
	HeaderURL string
}

// page is a rendered slice of entries ready to go into an embed.
type page struct {
	Index      int
	TotalPages int
	Total      int
	Body       string
	ImageURL   string
}

// entriesFromAccount flattens an account's games into listing entries,
// longest-played first.
func entriesFromAccount(account AccountResponse) []entry {
	entries := make([]entry, 0, len(account.Games))
	for name, g := range account.Games {
		entries = append(entries, entry{
			Name:      name,
			LinkURL:   g.StoreURL,
			Hours:     g.PlaytimeForever / 60,
			HeaderURL: g.HeaderURL,
		})
	}
	sortEntries(entries)
	return entries
}

// entriesFromSearch converts search owners into listing entries,
// longest-played first.
func entriesFromSearch(result SearchResponse) []entry {
	entries := make([]entry, 0, len(result.Users))
	for _, u := range result.Users {
		entries = append(entries, entry{
			Name:      u.Username,
			LinkURL:   u.ProfileURL,
			Hours:     u.Playtime / 60,
			HeaderURL: result.HeaderURL,
		})
	}
	sortEntries(entries)
	return entries
}

func sortEntries(entries []entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Hours > entries[j].Hours
	})
}

// renderPage clamps the requested page into range and renders its rows.
func renderPage(entries []entry, pageIndex int) page {
	totalPages := (len(entries) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if pageIndex < 0 {
		pageIndex = 0
	} else if pageIndex >= totalPages {
		pageIndex = totalPages - 1
	}

	start := pageIndex * pageSize
	end := start + pageSize
	if end > len(entries) {
		end = len(entries)
	}

	var sb strings.Builder
	for _, e := range entries[start:end] {
		sb.WriteString(fmt.Sprintf("[**%s**](%s) - %s\n", e.Name, e.LinkURL, formatHours(e.Hours)))
	}

	imageURL := ""
	if start < end {
		imageURL = entries[start].HeaderURL
	}

	return page{
		Index:      pageIndex,
		TotalPages: totalPages,
		Total:      len(entries),
		Body:       sb.String(),
		ImageURL:   imageURL,
	}
}

func formatHours(hours int) string {
	switch {
	case hours <= 0:
		return "Less than one hour"
	case hours == 1:
		return "1 hour"
	default:
		return fmt.Sprintf("%d hours", hours)
	}
}

// pageRef identifies a listing for pagination buttons: which command produced
// it, its query, and the page shown.
type pageRef struct {
	Kind  string
	Query string
	Page  int
}

func (r pageRef) customID(action string) string {
	return fmt.Sprintf("%s|%s|%s|%d", r.Kind, action, strings.ReplaceAll(r.Query, "|", ""), r.Page)
}

// parseCustomID reverses customID, returning the ref with the page already
// moved in the direction the button indicates.
func parseCustomID(customID string) (pageRef, bool) {
	parts := strings.Split(customID, "|")
	if len(parts) != 4 {
		return pageRef{}, false
	}
	pageIndex, err := strconv.Atoi(parts[3])
	if err != nil {
		return pageRef{}, false
	}

	ref := pageRef{Kind: parts[0], Query: parts[2], Page: pageIndex}
	switch parts[1] {
	case "next":
		ref.Page++
	case "prev":
		ref.Page--
	default:
		return pageRef{}, false
	}
	return ref, true
}
