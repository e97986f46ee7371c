package gateway

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jollyroger/weekly-summary/internal/domain"
)

func testWindow() domain.Window {
	return domain.Window{
		Start: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC),
	}
}

func TestTracGateway_FetchTickets(t *testing.T) {
	testCases := []struct {
		name           string
		kind           domain.ChangeKind
		wantStatuses   []string
		handlerFunc    func(w http.ResponseWriter, r *http.Request)
		expected       []domain.Ticket
		expectError    bool
		expectedErrMsg string
	}{
		{
			name:         "happy path - opened tickets",
			kind:         domain.Opened,
			wantStatuses: []string{"new", "reopened"},
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, "id\tsummary\ttype\tstatus\n"+
					"12\tSomething broke\tdefect\tnew\n"+
					"15\tMake it faster\tenhancement\treopened\n")
			},
			expected: []domain.Ticket{
				{ID: "12", Summary: "Something broke", Type: "defect"},
				{ID: "15", Summary: "Make it faster", Type: "enhancement"},
			},
		},
		{
			name:         "happy path - closed tickets",
			kind:         domain.Closed,
			wantStatuses: []string{"closed"},
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, "id\tsummary\ttype\tstatus\n"+
					"9\tAll done\ttask\tclosed\n")
			},
			expected: []domain.Ticket{
				{ID: "9", Summary: "All done", Type: "task"},
			},
		},
		{
			name:         "header-only response yields no tickets",
			kind:         domain.Opened,
			wantStatuses: []string{"new", "reopened"},
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, "id\tsummary\ttype\tstatus\n")
			},
			expected: []domain.Ticket{},
		},
		{
			name: "error case - trac returns 500",
			kind: domain.Opened,
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			expectError:    true,
			expectedErrMsg: "status 500",
		},
		{
			name: "error case - malformed row",
			kind: domain.Opened,
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, "id\tsummary\ttype\tstatus\n12\tno type column\n")
			},
			expectError:    true,
			expectedErrMsg: "failed to parse trac response",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var gotRequest *http.Request
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotRequest = r.Clone(r.Context())
				tc.handlerFunc(w, r)
			}))
			defer server.Close()
			gateway := NewTracGateway(server.URL, log.New(io.Discard, "", 0))

			tickets, err := gateway.FetchTickets(context.Background(), tc.kind, testWindow())

			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, tickets, len(tc.expected))
			for i, want := range tc.expected {
				assert.Equal(t, want.ID, tickets[i].ID)
				assert.Equal(t, want.Summary, tickets[i].Summary)
				assert.Equal(t, want.Type, tickets[i].Type)
				assert.Equal(t, server.URL+"/ticket/"+want.ID, tickets[i].URL)
			}

			// The query must match Trac's tab-delimited report interface.
			query := gotRequest.URL.Query()
			assert.Equal(t, "/query", gotRequest.URL.Path)
			assert.Equal(t, tc.wantStatuses, query["status"])
			assert.Equal(t, "tab", query.Get("format"))
			assert.Equal(t, "2024-01-08..2024-01-14", query.Get("changetime"))
			assert.Equal(t, []string{"id", "summary", "type", "status"}, query["col"])
			assert.Equal(t, "id", query.Get("order"))
			assert.Equal(t, "buildbot.net weekly summary", gotRequest.Header.Get("User-Agent"))
		})
	}
}
