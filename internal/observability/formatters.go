// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/match-intel/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJobReport outputs a human-readable summary of a scored job.
func (p *Printer) PrintJobReport(job *types.JobRecord, result *types.ScoreResult) {
	if job == nil || result == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Title:    %s\n", job.Title))
	sb.WriteString(fmt.Sprintf("Type:     %s\n", job.Type))
	switch job.Type {
	case types.EngagementHourly:
		sb.WriteString(fmt.Sprintf("Rate:     $%d-$%d/hr\n", job.RateMin, job.RateMax))
	case types.EngagementFixed:
		sb.WriteString(fmt.Sprintf("Budget:   $%d\n", job.Budget))
	}
	sb.WriteString(fmt.Sprintf("Client:   %s | spend %s", job.Location, job.ClientSpend))
	if job.PaymentVerified {
		sb.WriteString(" | verified")
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Traffic:  %s proposals\n", job.Proposals))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Score:    %d/100\n", result.Total))
	if len(result.Matches) > 0 {
		count := min(len(result.Matches), maxItemsToShow)
		sb.WriteString(fmt.Sprintf("Matches:  %s", strings.Join(result.Matches[:count], ", ")))
		if len(result.Matches) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf(" ... and %d more", len(result.Matches)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}
	if len(result.MissingMandatory) > 0 {
		sb.WriteString(fmt.Sprintf("Missing:  %s\n", strings.Join(result.MissingMandatory, ", ")))
	}
	sb.WriteString("\n")
	sb.WriteString(result.Advice.Message + "\n")
	sb.WriteString(result.Advice.Rationale + "\n")

	p.printBox("Job Report", strings.TrimRight(sb.String(), "\n"))
}

// PrintIntel outputs a human-readable summary of a client's deep intel.
func (p *Printer) PrintIntel(deep *types.DeepIntel) {
	if deep == nil {
		return
	}

	var sb strings.Builder

	name := deep.ClientName
	if name == "" {
		name = "(unknown)"
	}
	sb.WriteString(fmt.Sprintf("Client:       %s (%s)\n", name, deep.Location))
	sb.WriteString(fmt.Sprintf("Member since: %s\n", orDash(deep.MemberSince)))
	sb.WriteString(fmt.Sprintf("Hire rate:    %d%% | rating %.1f | avg $%.0f/hr paid\n",
		deep.HireRate, deep.AvgRating, deep.AvgRatePaid))
	sb.WriteString(fmt.Sprintf("History:      %d jobs, %d hires, %.0f hours billed\n",
		deep.JobsPosted, deep.HireCount, deep.HoursBilled))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Activity:     %d interviewing, %d invites, %d unanswered\n",
		deep.Activity.Interviewing, deep.Activity.InvitesSent, deep.Activity.UnansweredInvites))
	if deep.Activity.LastViewed != "" {
		sb.WriteString(fmt.Sprintf("Last viewed:  %s\n", deep.Activity.LastViewed))
	}
	if deep.ConnectsRequired > 0 {
		sb.WriteString(fmt.Sprintf("Connects:     %d\n", deep.ConnectsRequired))
	}
	if len(deep.MandatorySkills) > 0 {
		sb.WriteString(fmt.Sprintf("Mandatory:    %s\n", strings.Join(deep.MandatorySkills, ", ")))
	}

	p.printBox("Deep Intel", strings.TrimRight(sb.String(), "\n"))
}

// PrintScanSummary outputs a one-line-per-job table for a feed scan.
func (p *Printer) PrintScanSummary(jobs []*types.JobRecord, results []*types.ScoreResult) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("New jobs: %d\n\n", len(jobs)))
	for i, job := range jobs {
		if i >= len(results) {
			break
		}
		title := job.Title
		if len(title) > 38 {
			title = title[:35] + "..."
		}
		sb.WriteString(fmt.Sprintf("%3d  %s\n", results[i].Total, title))
	}

	p.printBox("Feed Scan", strings.TrimRight(sb.String(), "\n"))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
