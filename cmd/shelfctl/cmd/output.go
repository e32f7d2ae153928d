package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	apiclient "github.com/pantrylab/shelfmatch/internal/api/client"
	domain "github.com/pantrylab/shelfmatch/pkg/types"
)

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

func printProductsTable(products []domain.Product) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tNAME\tCATEGORY\tCREATED\n")
	for i := range products {
		tw.writef("%s\t%s\t%s\t%s\n",
			products[i].ID,
			truncate(products[i].Name, 40),
			products[i].Category,
			products[i].CreatedAt.Format("2006-01-02"),
		)
	}
	return tw.finish()
}

func printProductDetail(p *domain.Product) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID:\t%s\n", p.ID)
	tw.writef("Name:\t%s\n", p.Name)
	tw.writef("Category:\t%s\n", p.Category)
	tw.writef("Created:\t%s\n", p.CreatedAt.Format("2006-01-02 15:04:05"))
	tw.writef("Updated:\t%s\n", p.UpdatedAt.Format("2006-01-02 15:04:05"))
	return tw.finish()
}

func printEntriesTable(entries []domain.Entry) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tSTORE\tSIZE\tDISPLAY\tPRICE\tUNIT PRICE\n")
	for i := range entries {
		e := &entries[i]
		tw.writef("%s\t%s\t%s\t%s\t%.2f\t%s\n",
			e.ID,
			e.Store,
			truncate(e.SizeText, 20),
			strOrDash(e.SizeDisplay),
			e.Price,
			floatOrDash(e.PricePerUnit),
		)
	}
	return tw.finish()
}

func printEntryDetail(e *domain.Entry) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID:\t%s\n", e.ID)
	tw.writef("Product:\t%s\n", e.ProductID)
	tw.writef("Store:\t%s\n", e.Store)
	tw.writef("Size Text:\t%s\n", e.SizeText)
	tw.writef("Display:\t%s\n", strOrDash(e.SizeDisplay))
	tw.writef("Category:\t%s\n", strOrDash(e.SizeCategory))
	tw.writef("Price:\t%.2f %s\n", e.Price, e.Currency)
	tw.writef("Unit Price:\t%s\n", floatOrDash(e.PricePerUnit))
	tw.writef("Comparable:\t%v\n", e.Comparable())
	return tw.finish()
}

func printRankedTable(ranked []domain.RankedEntry) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("RANK\tSTORE\tSIZE\tPRICE\tUNIT PRICE\n")
	for i := range ranked {
		r := &ranked[i]
		tw.writef("%d\t%s\t%s\t%.2f\t%s\n",
			i+1,
			r.Entry.Store,
			strOrDash(r.Entry.SizeDisplay),
			r.Entry.Price,
			r.UnitPriceStr,
		)
	}
	return tw.finish()
}

func printMatchesTable(matches []apiclient.ClosestMatch) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("STORE\tSIZE\tPRICE\tDIFF\tEXACT\tAUTO\n")
	for i := range matches {
		m := &matches[i]
		tw.writef("%s\t%s\t%.2f\t%.1f%%\t%v\t%v\n",
			m.Entry.Store,
			strOrDash(m.Entry.SizeDisplay),
			m.Entry.Price,
			m.PercentDiff,
			m.IsExact,
			m.IsAutoMatchable,
		)
	}
	return tw.finish()
}

func printJobRunsTable(runs []domain.JobRun) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("JOB\tSTATUS\tSTARTED\tCOMPLETED\tROWS\tERROR\n")
	for i := range runs {
		r := &runs[i]
		completed := "-"
		if r.CompletedAt != nil {
			completed = r.CompletedAt.Format("2006-01-02 15:04:05")
		}
		rows := "-"
		if r.RowsAffected != nil {
			rows = fmt.Sprintf("%d", *r.RowsAffected)
		}
		tw.writef("%s\t%s\t%s\t%s\t%s\t%s\n",
			r.JobName,
			r.Status,
			r.StartedAt.Format("2006-01-02 15:04:05"),
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

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func strOrDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func floatOrDash(f *float64) string {
	if f == nil {
		return "-"
	}
	return fmt.Sprintf("%.4f", *f)
}
