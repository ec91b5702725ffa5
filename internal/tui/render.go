// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-social-graph/models"
	"github.com/charmbracelet/lipgloss"
)

const dateLayout = "2006-01-02 15:04"

// RenderUser draws a profile card with the follow counters.
func RenderUser(u models.User) string {
	rows := []string{
		titleStyle.Render(u.Name),
		field("id", strconv.FormatInt(u.UserID, 10)),
	}
	if u.Email != "" {
		rows = append(rows, field("email", u.Email))
	}
	rows = append(rows,
		field("followers", strconv.FormatInt(u.FollowersCount, 10)),
		field("following", strconv.FormatInt(u.FollowingsCount, 10)),
	)
	if !u.CreatedAt.IsZero() {
		rows = append(rows, field("joined", u.CreatedAt.Local().Format(dateLayout)))
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// RenderUserPage lists one page of followers or followings. When more pages
// exist, the footer shows the cursor to pass as --after.
func RenderUserPage(title string, page models.UserPage) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d)", title, page.TotalCount)))
	b.WriteString("\n")

	if len(page.Edges) == 0 {
		b.WriteString("  -\n")
	}
	for _, edge := range page.Edges {
		b.WriteString(fmt.Sprintf("  #%-6d %-20s %s\n",
			edge.User.UserID, edge.User.Name, formatTime(edge.FollowedAt)))
	}

	if page.PageInfo.HasNextPage {
		b.WriteString(helpStyle.Render("more: --after " + page.PageInfo.EndCursor))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func field(label, value string) string {
	return labelStyle.Render(label) + value
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(dateLayout)
}
