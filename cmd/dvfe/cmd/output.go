package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	apiclient "github.com/donaldgifford/dvf-estimator/internal/api/client"
	domain "github.com/donaldgifford/dvf-estimator/pkg/types"
)

const timeLayout = "2006-01-02 15:04:05"

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printEstimate(w io.Writer, resp *apiclient.EstimateResponse) error {
	tw := newTabWriter(w)
	if resp.Estimate == nil {
		tw.writef("Estimate:\tnone\n")
		tw.writef("Reason:\t%s\n", resp.Reason)
	} else {
		tw.writef("Estimated Price:\t%s\n", euros(resp.Estimate.EstimatedPrice))
		tw.writef("Price per m2:\t%s\n", euros(resp.Estimate.AveragePricePerM2))
		tw.writef("Comparables:\t%d\n", resp.Estimate.ComparableCount)
	}
	if resp.LeadID != "" {
		tw.writef("Lead ID:\t%s\n", resp.LeadID)
	}
	return tw.finish()
}

func printSalesTable(w io.Writer, sales []domain.Sale) error {
	tw := newTabWriter(w)
	tw.writef("DATE\tPOSTCODE\tMUNICIPALITY\tKIND\tSURFACE\tPRICE\tEUR/M2\n")
	for i := range sales {
		s := &sales[i]
		date := "-"
		if s.MutationDate != nil {
			date = s.MutationDate.Format("2006-01-02")
		}
		tw.writef("%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			date,
			s.PostalCode,
			truncate(s.Municipality, 30),
			s.PropertyKind,
			amount(s.BuiltSurface, "%.0f m2"),
			amount(s.Price, "%.0f"),
			perM2(s),
		)
	}
	return tw.finish()
}

func printCorpusStats(w io.Writer, st *domain.CorpusStats) error {
	tw := newTabWriter(w)
	tw.writef("Sales:\t%d\n", st.TotalSales)
	tw.writef("Postal Codes:\t%d\n", st.PostalCodes)
	tw.writef("Missing Price:\t%d\n", st.MissingPrice)
	tw.writef("Missing Surface:\t%d\n", st.MissingSurface)
	if st.FirstMutation != nil && st.LastMutation != nil {
		tw.writef("Period:\t%s to %s\n",
			st.FirstMutation.Format("2006-01-02"),
			st.LastMutation.Format("2006-01-02"),
		)
	}
	return tw.finish()
}

func printImportResult(w io.Writer, res *apiclient.ImportResult) error {
	tw := newTabWriter(w)
	tw.writef("Run ID:\t%s\n", res.RunID)
	tw.writef("Rows:\t%d\n", res.Rows)
	tw.writef("Cache Keys Deleted:\t%d\n", res.CacheKeysDeleted)
	tw.writef("Duration:\t%s\n", res.Duration)
	tw.writef("\nYEAR\tLINES\tKEPT\tFILTERED\tDUPLICATES\n")
	for _, ds := range res.Datasets {
		tw.writef("%d\t%d\t%d\t%d\t%d\n",
			ds.Year,
			ds.Stats.Lines,
			ds.Stats.Kept,
			ds.Stats.Filtered,
			ds.Stats.Duplicates,
		)
	}
	return tw.finish()
}

func printImportRunsTable(w io.Writer, runs []domain.ImportRun) error {
	tw := newTabWriter(w)
	tw.writef("ID\tSOURCE\tSTATUS\tSTARTED\tCOMPLETED\tROWS\tERROR\n")
	for i := range runs {
		r := &runs[i]
		completed := "-"
		if r.CompletedAt != nil {
			completed = r.CompletedAt.Format(timeLayout)
		}
		rows := "-"
		if r.RowsAffected != nil {
			rows = fmt.Sprintf("%d", *r.RowsAffected)
		}
		tw.writef("%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID,
			r.Source,
			r.Status,
			r.StartedAt.Format(timeLayout),
			completed,
			rows,
			truncate(r.ErrorText, 40),
		)
	}
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// frPrinter groups thousands the way French listings do.
var frPrinter = message.NewPrinter(language.French)

func euros(v int64) string {
	return frPrinter.Sprintf("%d €", v)
}

func amount(a domain.Amount, format string) string {
	if !a.Valid {
		return "-"
	}
	return fmt.Sprintf(format, a.Value)
}

func perM2(s *domain.Sale) string {
	v := s.PricePerM2()
	if v == 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f", v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
