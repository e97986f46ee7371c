// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jollyroger/weekly-summary/internal/domain"
	"github.com/jollyroger/weekly-summary/internal/gateway"
	"github.com/jollyroger/weekly-summary/internal/render"
)

const summaryPadding = 2

// missingSection stands in for a report section whose fetch pipeline failed.
const missingSection = "(no data: fetch failed)"

// Reporter builds the weekly summary from the two fetch pipelines. The
// tracker and pull-request pipelines are independent; one failing still
// produces a report with the surviving section.
type Reporter struct {
	tickets gateway.TicketFetcher
	pulls   gateway.PullRequestFetcher
	logger  *log.Logger
}

// NewReporter creates a Reporter instance.
func NewReporter(tickets gateway.TicketFetcher, pulls gateway.PullRequestFetcher, logger *log.Logger) *Reporter {
	return &Reporter{
		tickets: tickets,
		pulls:   pulls,
		logger:  logger,
	}
}

// Report runs both pipelines concurrently and assembles the final report.
// A failed pipeline is logged and its section replaced with a placeholder;
// only both failing is an error.
func (r *Reporter) Report(ctx context.Context, w domain.Window) (string, error) {
	r.logger.Printf("Building weekly summary for %s..%s", w.StartDay(), w.EndDay())

	var tracBlock, githubBlock string
	var tracErr, githubErr error

	var g errgroup.Group
	g.Go(func() error {
		tracBlock, tracErr = r.SummarizeTickets(ctx, w)
		return nil
	})
	g.Go(func() error {
		githubBlock, githubErr = r.SummarizePullRequests(ctx, w)
		return nil
	})
	g.Wait()

	if tracErr != nil && githubErr != nil {
		return "", fmt.Errorf("all fetch pipelines failed: trac: %v; github: %v", tracErr, githubErr)
	}
	if tracErr != nil {
		r.logger.Printf("Trac pipeline failed: %v", tracErr)
		tracBlock = missingSection
	}
	if githubErr != nil {
		r.logger.Printf("GitHub pipeline failed: %v", githubErr)
		githubBlock = missingSection
	}

	return fmt.Sprintf("Trac Tickets\n============\n%s\n\n\nGitHub Pull Requests\n====================\n%s",
		tracBlock, githubBlock), nil
}

// SummarizeTickets fetches the window's new/reopened and closed tickets and
// renders the ticket section: a per-category count table followed by the two
// itemized lists. The two queries run concurrently; a single failed query is
// excluded and the other still counts, but both failing fails the section.
func (r *Reporter) SummarizeTickets(ctx context.Context, w domain.Window) (string, error) {
	var opened, closed []domain.Ticket
	var openedErr, closedErr error

	var g errgroup.Group
	g.Go(func() error {
		opened, openedErr = r.tickets.FetchTickets(ctx, domain.Opened, w)
		return nil
	})
	g.Go(func() error {
		closed, closedErr = r.tickets.FetchTickets(ctx, domain.Closed, w)
		return nil
	})
	g.Wait()

	if openedErr != nil && closedErr != nil {
		return "", fmt.Errorf("both trac queries failed: opened: %v; closed: %v", openedErr, closedErr)
	}
	if openedErr != nil {
		r.logger.Printf("Trac opened query failed, excluding: %v", openedErr)
		opened = nil
	}
	if closedErr != nil {
		r.logger.Printf("Trac closed query failed, excluding: %v", closedErr)
		closed = nil
	}

	summary := domain.NewTicketSummary()
	for _, t := range opened {
		summary.Add(domain.Opened, t)
	}
	for _, t := range closed {
		summary.Add(domain.Closed, t)
	}

	counts := make(map[string]map[string]any, len(domain.Categories))
	rowOrder := make([]string, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		counts[string(c)] = map[string]any{
			"Opened": summary[c].Opened,
			"Closed": summary[c].Closed,
		}
		rowOrder = append(rowOrder, string(c))
	}
	countTable := render.Tablify(counts, render.TableOptions{
		ShowHeader: true,
		RowOrder:   rowOrder,
		ColOrder:   []string{"Opened", "Closed"},
		Padding:    summaryPadding,
	})

	blocks := []string{
		render.Heading("Ticket Summary") + "\n" + countTable,
		render.Heading("New/Reopened Tickets") + "\n" + ticketTable(opened),
		render.Heading("Closed Tickets") + "\n" + ticketTable(closed),
	}
	return strings.Join(blocks, "\n\n"), nil
}

// ticketTable renders an itemized ticket list in response order, without a
// header row.
func ticketTable(tickets []domain.Ticket) string {
	data := make(map[string]map[string]any, len(tickets))
	order := make([]string, 0, len(tickets))
	for i, t := range tickets {
		key := strconv.Itoa(i)
		data[key] = map[string]any{
			"id":      t.ID,
			"type":    t.Type,
			"summary": t.Summary,
			"url":     t.URL,
		}
		order = append(order, key)
	}
	return render.Tablify(data, render.TableOptions{
		RowOrder: order,
		ColOrder: []string{"id", "type", "summary", "url"},
		Padding:  summaryPadding,
		Format:   render.ItemListFormat,
	})
}

// SummarizePullRequests fetches every pull request and renders the GitHub
// section: itemized lists of pull requests opened and completed inside the
// window. Classification is by state: an open pull request counts as Opened
// if it was created in the window, a closed one as Completed if it was
// closed in the window. Anything whose relevant date falls outside the
// window is dropped.
func (r *Reporter) SummarizePullRequests(ctx context.Context, w domain.Window) (string, error) {
	pulls, err := r.pulls.FetchPullRequests(ctx)
	if err != nil {
		return "", err
	}

	var opened, completed []domain.PullRequest
	for _, pr := range pulls {
		switch {
		case pr.State == "open" && pr.CreatedAt != nil && w.Contains(*pr.CreatedAt):
			opened = append(opened, pr)
		case pr.State == "closed" && pr.ClosedAt != nil && w.Contains(*pr.ClosedAt):
			completed = append(completed, pr)
		}
	}

	blocks := []string{
		render.Heading("Opened Pull Requests") + "\n" + pullRequestTable(opened),
		render.Heading("Completed Pull Requests") + "\n" + pullRequestTable(completed),
	}
	return strings.Join(blocks, "\n\n"), nil
}

// pullRequestTable renders an itemized pull-request list in response order,
// without a header row.
func pullRequestTable(pulls []domain.PullRequest) string {
	data := make(map[string]map[string]any, len(pulls))
	order := make([]string, 0, len(pulls))
	for i, pr := range pulls {
		key := strconv.Itoa(i)
		data[key] = map[string]any{
			"number": pr.Number,
			"title":  pr.Title,
			"url":    pr.URL,
		}
		order = append(order, key)
	}
	return render.Tablify(data, render.TableOptions{
		RowOrder: order,
		ColOrder: []string{"number", "title", "url"},
		Padding:  summaryPadding,
		Format:   render.ItemListFormat,
	})
}
