package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// ExportCSV writes the stored records to w, one row per record with a
// header line. An empty store writes nothing and is not an error.
func (s *Store) ExportCSV(w io.Writer) error {
	records := s.All()
	if len(records) == 0 {
		return nil
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"package", "time_used_ms", "timestamp"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range records {
		row := []string{r.Package, strconv.FormatInt(r.TimeUsedMS, 10), r.Timestamp}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
