package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/credscan/internal/model"
)

// csvHeader is the column layout of the matches export. Downstream
// tooling keys on these names; do not reorder.
var csvHeader = []string{
	"src",
	"username",
	"email",
	"password",
	"primary_relation",
	"flags",
	"matched_tokens",
	"matched_deleet_tokens",
}

// CSVWriter exports the related records (primary relation other than
// no_relation) as CSV rows, one per record, in input order.
//
// Design decision: We export only related records rather than the full
// dump because the export exists to hand confirmed identity-derived
// credentials to downstream tooling; unrelated records would just
// re-serialize the input.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the related records as CSV. The byte count is
// approximate: encoding/csv does not report bytes written, so we count
// rows instead and return the row count.
func (w *CSVWriter) Write(report *model.Report) (int, error) {
	cw := csv.NewWriter(w.output)

	if err := cw.Write(csvHeader); err != nil {
		return 0, fmt.Errorf("write csv header: %w", err)
	}

	rows := 0
	for _, c := range report.RelatedClassifications() {
		row := []string{
			c.Record.Source,
			c.Record.Username,
			c.Record.Email,
			c.Record.Password,
			c.Primary.String(),
			strings.Join(c.Flags.TrueFlags(), ";"),
			strings.Join(c.Flags.MatchedTokens, ","),
			strings.Join(c.Flags.MatchedDeleetTokens, ","),
		}
		if err := cw.Write(row); err != nil {
			return rows, fmt.Errorf("write csv row: %w", err)
		}
		rows++
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return rows, fmt.Errorf("flush csv: %w", err)
	}
	return rows, nil
}
