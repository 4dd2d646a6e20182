package archive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/viant/wordrank/schedule"
)

var datePattern = regexp.MustCompile(`(20\d{2}-\d{2}-\d{2})`)

// DirStore keeps one "<YYYY-MM-DD>.json" ranking array per game date in a
// directory. The files carry no secret word; Get derives it from Schedule
// when set.
type DirStore struct {
	Dir      string
	Schedule *schedule.Schedule
}

// NewDirStore creates dir if needed and returns a store over it.
func NewDirStore(dir string, sched *schedule.Schedule) (*DirStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("archive: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("archive: create %s: %w", dir, err)
	}
	return &DirStore{Dir: dir, Schedule: sched}, nil
}

// Path returns the ranking file path for date.
func (d *DirStore) Path(date time.Time) string {
	return filepath.Join(d.Dir, schedule.FormatDate(date)+".json")
}

// Exists reports whether the ranking file for date exists.
func (d *DirStore) Exists(_ context.Context, date time.Time) (bool, error) {
	_, err := os.Stat(d.Path(date))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

// Upsert writes the ranking of rec, replacing an existing file atomically.
func (d *DirStore) Upsert(_ context.Context, rec *Record) error {
	if rec == nil {
		return fmt.Errorf("archive: Upsert called with nil record")
	}
	data, err := EncodeRanking(rec.Ranking)
	if err != nil {
		return err
	}
	target := d.Path(rec.GameDate)
	tmp, err := os.CreateTemp(d.Dir, ".ranking-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}

// Get reads the ranking file for date.
func (d *DirStore) Get(_ context.Context, date time.Time) (*Record, error) {
	path := d.Path(date)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	rec, err := doc.record(date)
	if err != nil {
		return nil, err
	}
	if rec.SecretWord == "" && d.Schedule != nil {
		rec.SecretWord, _ = d.Schedule.WordFor(date)
	}
	if rec.CreatedAt.IsZero() {
		if info, err := os.Stat(path); err == nil {
			rec.CreatedAt = info.ModTime()
		}
	}
	return rec, nil
}

// Dates lists dates with a ranking file, newest first.
func (d *DirStore) Dates(_ context.Context) ([]time.Time, error) {
	files, err := filepath.Glob(filepath.Join(d.Dir, "*.json"))
	if err != nil {
		return nil, err
	}
	var out []time.Time
	for _, f := range files {
		date, ok := dateFromName(f)
		if !ok || filepath.Base(f) != schedule.FormatDate(date)+".json" {
			continue
		}
		out = append(out, date)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].After(out[j]) })
	return out, nil
}

// Close is a no-op.
func (d *DirStore) Close() error { return nil }

// dateFromName extracts the first YYYY-MM-DD date of the file name.
func dateFromName(path string) (time.Time, bool) {
	m := datePattern.FindString(filepath.Base(path))
	if m == "" {
		return time.Time{}, false
	}
	date, err := schedule.ParseDate(m)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

// Ensure DirStore satisfies the Store interface.
var _ Store = (*DirStore)(nil)
