package ui

import (
	"net/url"
	"strings"
	"time"
)

func urlQueryEscape(s string) string {
	return url.QueryEscape(s)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

func joinComma(items []string) string {
	return strings.Join(items, ", ")
}
