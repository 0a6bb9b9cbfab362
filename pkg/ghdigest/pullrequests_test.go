package ghdigest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"testing"
	"time"
)

func prItem(number int, updatedAt string) map[string]any {
	item := map[string]any{
		"number":     number,
		"title":      fmt.Sprintf("PR %d", number),
		"state":      "closed",
		"body":       "some description",
		"html_url":   fmt.Sprintf("https://github.com/octo/widgets/pull/%d", number),
		"user":       map[string]any{"login": "octocat"},
		"created_at": "2024-01-10T00:00:00Z",
	}
	if updatedAt != "" {
		item["updated_at"] = updatedAt
	}
	return item
}

func shaItems(shas ...string) []map[string]any {
	items := make([]map[string]any, 0, len(shas))
	for _, sha := range shas {
		items = append(items, map[string]any{"sha": sha})
	}
	return items
}

func inputCommits(shas ...string) []Commit {
	commits := make([]Commit, 0, len(shas))
	for _, sha := range shas {
		commits = append(commits, Commit{SHA: sha, Message: "change " + sha})
	}
	return commits
}

func TestPullRequestsWith_Association(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/octo/widgets/pulls":
			if got := r.URL.Query().Get("state"); got != "all" {
				t.Errorf("state = %q, want all", got)
			}
			if got := r.URL.Query().Get("sort"); got != "updated" {
				t.Errorf("sort = %q, want updated", got)
			}
			_ = json.NewEncoder(w).Encode([]map[string]any{
				prItem(7, "2024-03-01T00:00:00Z"),
				prItem(5, "2024-02-01T00:00:00Z"),
				prItem(9, "2024-04-01T00:00:00Z"),
			})
		case "/repos/octo/widgets/pulls/7/commits":
			_ = json.NewEncoder(w).Encode(shaItems("aaa", "zzz", "bbb"))
		case "/repos/octo/widgets/pulls/5/commits":
			_ = json.NewEncoder(w).Encode(shaItems("unrelated"))
		case "/repos/octo/widgets/pulls/9/commits":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))

	pulls, skipped, incomplete := client.PullRequestsWith(
		context.Background(), "octo", "widgets", inputCommits("aaa", "bbb", "ccc"))

	if incomplete {
		t.Error("incomplete = true, want false")
	}
	if len(skipped) != 1 || skipped[0] != 9 {
		t.Errorf("skipped = %v, want [9]", skipped)
	}

	// Only PR 7 intersects the input set; PR 5 has no matching commit and a
	// failed commit listing must not produce an association at all.
	if len(pulls) != 1 {
		t.Fatalf("len(pulls) = %d, want 1", len(pulls))
	}
	pr := pulls[0]
	if pr.Number != 7 {
		t.Errorf("Number = %d, want 7", pr.Number)
	}
	if pr.CommitsCount != 2 || len(pr.Commits) != 2 {
		t.Fatalf("commits_count = %d (len %d), want the intersection size 2", pr.CommitsCount, len(pr.Commits))
	}
	// Subset carries full input record detail, in the PR's listing order.
	if pr.Commits[0].SHA != "aaa" || pr.Commits[1].SHA != "bbb" {
		t.Errorf("subset = [%s %s], want [aaa bbb]", pr.Commits[0].SHA, pr.Commits[1].SHA)
	}
	if pr.Commits[0].Message != "change aaa" {
		t.Errorf("subset lost record detail: %q", pr.Commits[0].Message)
	}
	if pr.Author != "octocat" {
		t.Errorf("Author = %q, want octocat", pr.Author)
	}
}

func TestPullRequestsWith_SortsByUpdatedDescending(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/repos/octo/widgets/pulls":
			_ = json.NewEncoder(w).Encode([]map[string]any{
				prItem(1, "2024-01-01T00:00:00Z"),
				prItem(2, ""), // no updated timestamp
				prItem(3, "2024-06-01T00:00:00Z"),
			})
		default:
			// Every PR contains the input commit.
			_ = json.NewEncoder(w).Encode(shaItems("aaa"))
		}
	}))

	pulls, _, _ := client.PullRequestsWith(context.Background(), "octo", "widgets", inputCommits("aaa"))

	if len(pulls) != 3 {
		t.Fatalf("len(pulls) = %d, want 3", len(pulls))
	}
	got := []int{pulls[0].Number, pulls[1].Number, pulls[2].Number}
	// Newest first; the PR without a timestamp sorts last.
	want := []int{3, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	if pulls[2].UpdatedAt != nil {
		t.Error("PR 2 should carry no updated timestamp")
	}
}

func TestPullRequestsWith_ListingFailureIsPartial(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/repos/octo/widgets/pulls":
			page, _ := strconv.Atoi(r.URL.Query().Get("page"))
			if page > 1 {
				// Second page blows up; the first page must still be processed.
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			items := make([]map[string]any, 0, maxPerPage)
			for i := range maxPerPage {
				items = append(items, prItem(i+1, "2024-01-01T00:00:00Z"))
			}
			_ = json.NewEncoder(w).Encode(items)
		default:
			_ = json.NewEncoder(w).Encode(shaItems("other"))
		}
	}))

	pulls, skipped, incomplete := client.PullRequestsWith(context.Background(), "octo", "widgets", inputCommits("aaa"))

	if !incomplete {
		t.Error("incomplete = false, want true after listing failure")
	}
	if len(pulls) != 0 {
		t.Errorf("len(pulls) = %d, want 0 (no commit matches)", len(pulls))
	}
	if len(skipped) != 0 {
		t.Errorf("skipped = %v, want none", skipped)
	}
}

func TestPullRequestCommitSHAs_Paginates(t *testing.T) {
	var pagesSeen []int
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/octo/widgets/pulls/42/commits" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		pagesSeen = append(pagesSeen, page)

		count := maxPerPage
		if page == 2 {
			count = 1
		}
		shas := make([]string, 0, count)
		for i := range count {
			shas = append(shas, fmt.Sprintf("sha-%d-%d", page, i))
		}
		_ = json.NewEncoder(w).Encode(shaItems(shas...))
	}))

	shas, err := client.pullRequestCommitSHAs(context.Background(), "octo", "widgets", 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pagesSeen) != 2 {
		t.Errorf("pages fetched = %v, want two pages", pagesSeen)
	}
	if len(shas) != maxPerPage+1 {
		t.Errorf("len(shas) = %d, want %d", len(shas), maxPerPage+1)
	}
}

func TestSortPullsByUpdated_Stable(t *testing.T) {
	at := func(s string) *time.Time {
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			t.Fatalf("bad timestamp %q: %v", s, err)
		}
		return &ts
	}

	pulls := []PullRequest{
		{Number: 1},
		{Number: 2, UpdatedAt: at("2024-05-01T00:00:00Z")},
		{Number: 3},
		{Number: 4, UpdatedAt: at("2024-05-01T00:00:00Z")},
	}
	sortPullsByUpdated(pulls)

	got := []int{pulls[0].Number, pulls[1].Number, pulls[2].Number, pulls[3].Number}
	// Equal timestamps keep discovery order; missing timestamps go last.
	want := []int{2, 4, 1, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}
