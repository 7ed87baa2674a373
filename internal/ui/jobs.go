package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/afrotie/ethio/internal/catalog"
	"github.com/afrotie/ethio/internal/emoji"
	"github.com/afrotie/ethio/internal/logger"
)

func (m *Model) selectedJob() (catalog.JobListing, bool) {
	item := m.jobs.GetSelectedItem()
	if item == nil {
		return catalog.JobListing{}, false
	}
	for _, j := range m.sess.Catalog().Jobs {
		if j.ID == item.ID {
			return j, true
		}
	}
	return catalog.JobListing{}, false
}

func (m *Model) handleJobsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.jobs.MoveUp()
	case "down", "j":
		m.jobs.MoveDown()
	case "enter", "a":
		job, ok := m.selectedJob()
		if !ok {
			return m, nil
		}
		if !m.sess.ApplyJob(job.ID) {
			m.setStatus("You already applied to %s at %s", job.Title, job.Company)
			return m, nil
		}
		m.log.InfoWithFields("applied to job", []logger.Field{logger.F("job", job.ID), logger.F("company", job.Company)})
		m.refreshLists()
		m.setStatus("%s Application sent to %s", emoji.GetEmoji("success"), job.Company)
	}
	return m, nil
}

func (m *Model) renderJobs(styles *Styles) string {
	parts := []string{m.jobs.Render()}

	if job, ok := m.selectedJob(); ok {
		w, _ := m.contentSize()
		action := styles.Button.Render("[enter] Apply Now")
		if m.sess.HasApplied(job.ID) {
			action = styles.Success.Render(emoji.GetEmoji("success") + " Applied")
		}
		detail := lipgloss.JoinVertical(lipgloss.Left,
			styles.Subheader.Render(job.Title),
			styles.Muted.Render(fmt.Sprintf("%s · %s %s · %s", job.Company, emoji.GetEmoji("location"), job.Location, job.Type)),
			styles.Price.Render(job.Salary),
			lipgloss.NewStyle().Width(w-6).Render(styles.Body.Render(job.Description)),
			styles.Muted.Render("Posted "+job.PostedAt),
			"",
			action,
		)
		parts = append(parts, styles.Card.Render(detail))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
