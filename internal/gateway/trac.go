// Package gateway provides access to the remote data sources the report is
// built from: the Trac ticket tracker and the GitHub REST API.
package gateway

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/jollyroger/weekly-summary/internal/domain"
)

// userAgent is sent on every outbound request, to Trac and GitHub alike.
const userAgent = "buildbot.net weekly summary"

// TicketFetcher defines the tracker side of the report's data sources.
type TicketFetcher interface {
	FetchTickets(ctx context.Context, kind domain.ChangeKind, w domain.Window) ([]domain.Ticket, error)
}

// TracGateway fetches tickets from a Trac instance via its tab-delimited
// query interface.
type TracGateway struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewTracGateway creates a gateway for the Trac instance at baseURL
// (e.g. http://trac.buildbot.net, no trailing slash).
func NewTracGateway(baseURL string, logger *log.Logger) *TracGateway {
	return &TracGateway{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// FetchTickets queries Trac for tickets whose status changed inside the
// window: new/reopened tickets for Opened, closed tickets for Closed. The
// response is tab-separated with a header row, columns id, summary, type,
// status.
func (g *TracGateway) FetchTickets(ctx context.Context, kind domain.ChangeKind, w domain.Window) ([]domain.Ticket, error) {
	var status string
	switch kind {
	case domain.Opened:
		status = "status=new&status=reopened"
	case domain.Closed:
		status = "status=closed"
	default:
		return nil, fmt.Errorf("unknown change kind %q", kind)
	}

	url := fmt.Sprintf("%s/query?%s&format=tab&changetime=%s..%s&col=id&col=summary&col=type&col=status&order=id",
		g.baseURL, status, w.StartDay(), w.EndDay())
	g.logger.Printf("Fetching %s tickets: %s", kind, url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create trac request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("trac request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trac query returned status %d", resp.StatusCode)
	}

	tickets, err := g.parseTickets(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse trac response: %w", err)
	}
	g.logger.Printf("Fetched %d %s tickets", len(tickets), kind)
	return tickets, nil
}

func (g *TracGateway) parseTickets(body io.Reader) ([]domain.Ticket, error) {
	r := csv.NewReader(body)
	r.Comma = '\t'
	r.LazyQuotes = true

	// The first row is the column header.
	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return []domain.Ticket{}, nil
		}
		return nil, err
	}

	var tickets []domain.Ticket
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) < 3 {
			return nil, fmt.Errorf("short row: %q", row)
		}
		tickets = append(tickets, domain.Ticket{
			ID:      row[0],
			Summary: row[1],
			Type:    row[2],
			URL:     fmt.Sprintf("%s/ticket/%s", g.baseURL, row[0]),
		})
	}
	return tickets, nil
}
