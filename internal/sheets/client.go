// Package sheets mirrors registrations into a Google Sheets spreadsheet for
// human review. Mirroring is best-effort and never blocks the caller.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/PratikDhanave/interest-registration-service/internal/models"
)

const (
	// AppendRange covers the seven mirrored columns of the first sheet.
	AppendRange = "Sheet1!A:G"
	// SpreadsheetTitle is the title used by CreateSpreadsheet.
	SpreadsheetTitle = "Maktoub Interest Registrations"
)

// Header is the first row of the review spreadsheet, in column order.
var Header = []string{"Timestamp", "Name", "Email", "Phone", "Interest Type", "Other Details", "IP Address"}

// Appender appends one registration as a spreadsheet row.
type Appender interface {
	Append(ctx context.Context, reg models.Registration) error
}

// Client talks to the Sheets API v4.
type Client struct {
	svc     *gsheets.Service
	sheetID string
	cb      *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewClient builds a Sheets client authenticated through ts. Extra options
// (endpoint, HTTP client) are passed through to the API client.
func NewClient(ctx context.Context, sheetID string, ts oauth2.TokenSource, logger *zap.Logger, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)
	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	settings := gobreaker.Settings{
		Name:        "GoogleSheets",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn(
				"circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &Client{
		svc:     svc,
		sheetID: sheetID,
		cb:      gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}, nil
}

// Row renders a registration in Header order.
func Row(reg models.Registration) []interface{} {
	return []interface{}{
		reg.CreatedAt.UTC().Format(time.RFC3339Nano),
		reg.Name,
		reg.Email,
		reg.Phone,
		reg.InterestType,
		reg.Details(),
		reg.IPAddress,
	}
}

// Append adds reg below the last row of the sheet.
func (c *Client) Append(ctx context.Context, reg models.Registration) error {
	_, err := c.cb.Execute(func() (interface{}, error) {
		return c.svc.Spreadsheets.Values.
			Append(c.sheetID, AppendRange, &gsheets.ValueRange{
				Values: [][]interface{}{Row(reg)},
			}).
			ValueInputOption("USER_ENTERED").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).
			Do()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("sheets append skipped: %w", err)
	}
	if err != nil {
		return fmt.Errorf("sheets append: %w", err)
	}
	return nil
}

// CreateSpreadsheet creates the review spreadsheet with its header row.
func (c *Client) CreateSpreadsheet(ctx context.Context, title string) (*gsheets.Spreadsheet, error) {
	header := make([]*gsheets.CellData, 0, len(Header))
	for _, h := range Header {
		value := h
		header = append(header, &gsheets.CellData{
			UserEnteredValue: &gsheets.ExtendedValue{StringValue: &value},
		})
	}

	spreadsheet := &gsheets.Spreadsheet{
		Properties: &gsheets.SpreadsheetProperties{Title: title},
		Sheets: []*gsheets.Sheet{{
			Properties: &gsheets.SheetProperties{Title: "Sheet1"},
			Data: []*gsheets.GridData{{
				StartRow:    0,
				StartColumn: 0,
				RowData:     []*gsheets.RowData{{Values: header}},
			}},
		}},
	}

	created, err := c.svc.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("create spreadsheet: %w", err)
	}
	return created, nil
}
