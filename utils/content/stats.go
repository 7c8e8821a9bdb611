package content

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	WordsPerMinute      = 200
	DefaultRecentLimit  = 6
	noContributorsLabel = "No posts yet"
)

func WordCount(body string) int {
	return len(strings.Fields(body))
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// CalculateReadTime estimates minutes to read content; never below one.
func CalculateReadTime(content string) int {
	return max(1, ceilDiv(WordCount(content), WordsPerMinute))
}

func FormatDate(t time.Time) string      { return t.Format("January 2, 2006") }
func FormatDateShort(t time.Time) string { return t.Format("Jan 2, 2006") }
func FormatDateISO(t time.Time) string   { return t.UTC().Format("2006-01-02") }

func PublishedPosts(posts []Post) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if !p.Draft {
			out = append(out, p)
		}
	}
	return SortByDate(out)
}

// SortByDate returns a copy ordered newest first.
func SortByDate(posts []Post) []Post {
	out := append([]Post(nil), posts...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedDate.After(out[j].PublishedDate)
	})
	return out
}

func FeaturedPost(posts []Post) *Post {
	var featured []Post
	for _, p := range posts {
		if p.Featured && !p.Draft {
			featured = append(featured, p)
		}
	}
	if len(featured) == 0 {
		return nil
	}
	first := SortByDate(featured)[0]
	return &first
}

func RecentPosts(posts []Post, limit int) []Post {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	published := PublishedPosts(posts)
	if len(published) > limit {
		published = published[:limit]
	}
	return published
}

func formatReadTime(minutes int) string {
	hours := minutes / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}

func formatWordTotal(words int) string {
	if words >= 1000 {
		return fmt.Sprintf("%dk", ceilDiv(words, 1000))
	}
	return fmt.Sprintf("%d", words)
}

func CalculateBlogStats(posts []Post) BlogStats {
	totalPosts, totalWords, totalMinutes := 0, 0, 0
	for _, p := range posts {
		if p.Draft {
			continue
		}
		totalPosts++
		words := WordCount(p.Body)
		if words == 0 {
			continue
		}
		totalWords += words
		totalMinutes += ceilDiv(words, WordsPerMinute)
	}
	return BlogStats{
		TotalPosts:    totalPosts,
		TotalWords:    formatWordTotal(totalWords),
		TotalReadTime: formatReadTime(totalMinutes),
	}
}

// CalculateAuthorStats names the author credited on the most published posts.
// Ties go to whoever was credited first.
func CalculateAuthorStats(authors []Author, posts []Post) AuthorStats {
	counts := map[string]int{}
	var order []string
	for _, p := range posts {
		if p.Draft {
			continue
		}
		for _, id := range p.Author {
			if _, seen := counts[id]; !seen {
				order = append(order, id)
			}
			counts[id]++
		}
	}

	names := make(map[string]string, len(authors))
	for _, a := range authors {
		names[a.ID] = a.Name
	}

	top, best := noContributorsLabel, 0
	for _, id := range order {
		if counts[id] > best {
			best = counts[id]
			if name, ok := names[id]; ok {
				top = name
			}
		}
	}
	return AuthorStats{TotalAuthors: len(authors), TopContributor: top}
}
