package journal

import (
	"context"
	"fmt"
	"io"
)

// WriteRecap prints the whole conversation, evicted lines included, followed
// by the final summary and the turn count.
func (j *Journal) WriteRecap(ctx context.Context, w io.Writer) error {
	records, err := j.Entries(ctx)
	if err != nil {
		return err
	}
	summary, err := j.LatestSummary(ctx)
	if err != nil {
		return err
	}
	turns, err := j.Turns(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "\nConversation recap:")
	for _, r := range records {
		fmt.Fprintf(w, "%s: %s\n", r.Speaker.Label(), r.Text)
	}
	if summary != "" {
		fmt.Fprintf(w, "\nSummary: %s\n", summary)
	}
	_, err = fmt.Fprintf(w, "Turns: %d\n", turns)
	return err
}
