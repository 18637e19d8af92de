// Package csvexport writes interaction records as CSV for offline review.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/custodia-labs/tutor/internal/core/domain"
)

// Header is the first row of every export.
var Header = []string{"id", "username", "question", "answer", "context_snippet", "prompt_type", "timestamp"}

// Write encodes records as CSV with a header row. Timestamps are RFC 3339 in UTC.
func Write(w io.Writer, records []domain.InteractionRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := make([]string, len(Header))
	for i := range records {
		r := &records[i]
		row[0] = strconv.FormatInt(r.ID, 10)
		row[1] = r.Username
		row[2] = r.Question
		row[3] = r.Answer
		row[4] = r.ContextSnippet
		row[5] = r.PromptType
		row[6] = r.Timestamp.UTC().Format(time.RFC3339)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing record %d: %w", r.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
