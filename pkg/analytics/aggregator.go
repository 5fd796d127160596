// Package analytics computes behavioral reports over closed sessions.
// It is a stateless batch computation: safe to re-run concurrently over
// different windows, and nothing it computes feeds back into routing.
package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/sautiflow/sauti/pkg/domain"
)

// PathSeparator joins navigation paths into ranking keys.
const PathSeparator = " > "

// TopPaths and TopHours bound the ranked lists in a Report.
const (
	TopPaths = 5
	TopHours = 6
)

// PathCount is one ranked navigation path.
type PathCount struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// HourCount is one hour-of-day bucket ranked by session creations.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// Report is the aggregate view over one application's sessions.
type Report struct {
	TotalSessions int `json:"total_sessions"`
	UniqueUsers   int `json:"unique_users"`

	// AvgSessionLength is the mean number of keystrokes per session, a
	// proxy for engagement. Deliberately not wall-clock duration.
	AvgSessionLength float64 `json:"avg_session_length"`

	// CompletionRate is the fraction of sessions whose current node is
	// terminal in the graph. Sessions stuck mid-graph count in the
	// denominator only.
	CompletionRate float64 `json:"completion_rate"`

	TopMenuPaths []PathCount `json:"top_menu_paths"`
	PeakHours    []HourCount `json:"peak_hours"`
}

// Window bounds a report to sessions created in [Since, Until). A zero
// bound is open.
type Window struct {
	Since time.Time
	Until time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if !w.Since.IsZero() && t.Before(w.Since) {
		return false
	}
	if !w.Until.IsZero() && !t.Before(w.Until) {
		return false
	}
	return true
}

// Aggregate computes a Report for the sessions created inside the
// window. It is idempotent: the same inputs always yield the same
// report, including ranking order. Ties rank by count descending, then
// key ascending (path text, hour number).
func Aggregate(g *domain.MenuGraph, sessions []*domain.Session, win Window) Report {
	var report Report

	pathCounts := make(map[string]int)
	hourCounts := make(map[int]int)
	subscribers := make(map[string]struct{})

	totalInputs := 0
	completed := 0

	for _, sess := range sessions {
		if !win.Contains(sess.CreatedAt) {
			continue
		}
		report.TotalSessions++
		subscribers[sess.SubscriberID] = struct{}{}
		totalInputs += len(sess.InputHistory())

		if node := g.Node(sess.CurrentNodeID); node != nil && node.Terminal {
			completed++
		}

		if path := sess.NavigationPath(); len(path) > 0 {
			pathCounts[strings.Join(path, PathSeparator)]++
		}
		hourCounts[sess.CreatedAt.Hour()]++
	}

	report.UniqueUsers = len(subscribers)
	if report.TotalSessions > 0 {
		report.AvgSessionLength = float64(totalInputs) / float64(report.TotalSessions)
		report.CompletionRate = float64(completed) / float64(report.TotalSessions)
	}
	report.TopMenuPaths = rankPaths(pathCounts)
	report.PeakHours = rankHours(hourCounts)
	return report
}

func rankPaths(counts map[string]int) []PathCount {
	ranked := make([]PathCount, 0, len(counts))
	for path, count := range counts {
		ranked = append(ranked, PathCount{Path: path, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Path < ranked[j].Path
	})
	if len(ranked) > TopPaths {
		ranked = ranked[:TopPaths]
	}
	return ranked
}

func rankHours(counts map[int]int) []HourCount {
	ranked := make([]HourCount, 0, len(counts))
	for hour, count := range counts {
		ranked = append(ranked, HourCount{Hour: hour, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Hour < ranked[j].Hour
	})
	if len(ranked) > TopHours {
		ranked = ranked[:TopHours]
	}
	return ranked
}
