// Package store owns the on-disk usage history for droidusage.
//
// The history is a single JSON document with two top-level keys, records
// and last_updated. Every write replaces the whole document; the primary
// copy lives in the data directory and a best-effort mirror is kept in the
// dashboard directory for the downstream reader. The store assumes a
// single writer process: Append is a plain read-modify-write cycle with no
// cross-process locking.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileName is the name of the usage document in both the data and mirror
// directories.
const FileName = "usage_data.json"

// UsageRecord is one observation of foreground usage for a package.
// Records are append-only: the same package observed across several
// collection runs produces several records, and that duplication is the
// point — it is the usage history.
type UsageRecord struct {
	Package    string `json:"package"`
	TimeUsedMS int64  `json:"time_used_ms"`
	Timestamp  string `json:"timestamp"`
}

// Document is the persisted form of the store.
type Document struct {
	Records     []UsageRecord `json:"records"`
	LastUpdated *string       `json:"last_updated"`
}

// Store reads and writes the usage document.
type Store struct {
	path       string
	mirrorPath string
}

// New creates a Store rooted at dataDir with a mirror in mirrorDir, and
// initializes an empty document if none exists yet. A mirror directory
// that cannot be created is a warning, not an error: the mirror is best
// effort by contract.
func New(dataDir, mirrorDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.MkdirAll(mirrorDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create mirror directory: %v\n", err)
	}

	s := &Store{
		path:       filepath.Join(dataDir, FileName),
		mirrorPath: filepath.Join(mirrorDir, FileName),
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		if err := s.write(emptyDocument()); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Path returns the location of the primary document.
func (s *Store) Path() string {
	return s.path
}

// MirrorPath returns the location of the mirror copy.
func (s *Store) MirrorPath() string {
	return s.mirrorPath
}

// Append backfills missing timestamps on the incoming records, adds them
// to the end of the stored history and advances the last_updated
// watermark. An empty slice still moves the watermark: the run happened,
// it just found nothing.
func (s *Store) Append(records []UsageRecord) error {
	doc := s.read()

	now := time.Now().Format(time.RFC3339)
	for i := range records {
		if records[i].Timestamp == "" {
			records[i].Timestamp = now
		}
	}

	doc.Records = append(doc.Records, records...)
	doc.LastUpdated = &now

	return s.write(doc)
}

// All returns every stored record in insertion order.
func (s *Store) All() []UsageRecord {
	return s.read().Records
}

// ByPackage returns the stored records for one package, in insertion order.
func (s *Store) ByPackage(name string) []UsageRecord {
	var out []UsageRecord
	for _, r := range s.All() {
		if r.Package == name {
			out = append(out, r)
		}
	}
	return out
}

// ByDateRange returns records whose timestamp falls inside [start, end],
// inclusive on both ends. The bounds must parse; stored records with
// unparsable timestamps are skipped rather than failing the query.
func (s *Store) ByDateRange(start, end string) ([]UsageRecord, error) {
	from, err := ParseTimestamp(start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	to, err := ParseTimestamp(end)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", end, err)
	}

	var out []UsageRecord
	for _, r := range s.All() {
		ts, err := ParseTimestamp(r.Timestamp)
		if err != nil {
			continue
		}
		if !ts.Before(from) && !ts.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

// SummaryByApp folds the history into total milliseconds per package.
// Records without a package name are grouped under "unknown".
func (s *Store) SummaryByApp() map[string]int64 {
	summary := make(map[string]int64)
	for _, r := range s.All() {
		pkg := r.Package
		if pkg == "" {
			pkg = "unknown"
		}
		summary[pkg] += r.TimeUsedMS
	}
	return summary
}

// LastUpdated returns the watermark of the most recent successful write.
// ok is false when the store has never received data.
func (s *Store) LastUpdated() (string, bool) {
	doc := s.read()
	if doc.LastUpdated == nil {
		return "", false
	}
	return *doc.LastUpdated, true
}

// Clear replaces the document with its empty form at both locations.
func (s *Store) Clear() error {
	return s.write(emptyDocument())
}

// ParseTimestamp parses a stored or caller-supplied timestamp. Stored
// values are RFC 3339; timezone-less timestamps and bare dates are
// accepted for query bounds.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func emptyDocument() Document {
	return Document{Records: []UsageRecord{}}
}

// read loads the current document. A missing or corrupt file is treated as
// an empty document: the next successful write heals it.
func (s *Store) read() Document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return emptyDocument()
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return emptyDocument()
	}
	if doc.Records == nil {
		doc.Records = []UsageRecord{}
	}
	return doc
}

// write replaces the document at the primary location and then mirrors the
// identical bytes to the dashboard copy. A mirror failure is reported on
// stderr but never fails the operation; a primary failure always does.
func (s *Store) write(doc Document) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return fmt.Errorf("failed to encode usage document: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}

	if err := writeMirror(s.mirrorPath, data); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not write mirror copy: %v\n", err)
	}

	return nil
}

func writeMirror(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// encodeDocument renders the document pretty-printed so the file stays
// human-diffable, with HTML escaping off so package names and non-ASCII
// text are stored literally.
func encodeDocument(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
