// Command sheetsetup creates the review spreadsheet with its header row and
// prints the ID to put in GOOGLE_SHEET_ID.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/PratikDhanave/interest-registration-service/internal/config"
	"github.com/PratikDhanave/interest-registration-service/internal/sheets"
)

func main() {
	cfg, err := config.LoadSheets()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	ts := sheets.NewTokenSource(sheets.ConnectorConfig{
		Host:           cfg.ConnectorsHost,
		ReplIdentity:   cfg.ReplIdentity,
		WebReplRenewal: cfg.WebReplRenewal,
		DefaultTTL:     cfg.DefaultTokenTTL,
	})

	client, err := sheets.NewClient(ctx, "", ts, lg)
	if err != nil {
		lg.Fatal("create sheets client", zap.Error(err))
	}

	created, err := client.CreateSpreadsheet(ctx, sheets.SpreadsheetTitle)
	if err != nil {
		lg.Fatal("create spreadsheet", zap.Error(err))
	}

	fmt.Fprintf(os.Stdout, "Spreadsheet created: %s\n", sheets.SpreadsheetTitle)
	fmt.Fprintf(os.Stdout, "URL: %s\n", created.SpreadsheetUrl)
	fmt.Fprintf(os.Stdout, "ID:  %s\n\n", created.SpreadsheetId)
	fmt.Fprintf(os.Stdout, "Set GOOGLE_SHEET_ID=%s in the service environment to start mirroring registrations.\n", created.SpreadsheetId)
}
