package history

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// SchemaVersion is the current journal schema version.
const SchemaVersion = 1

// schemaHeader is the first line of the JSONL file.
type schemaHeader struct {
	SkinselSchemaVersion int   `json:"skinsel_schema_version"`
	CreatedAt            int64 `json:"created_at"`
}

// ErrJournalClosed is returned when operations are attempted on a closed journal.
var ErrJournalClosed = errors.New("journal is closed")

// Journal is an append-only JSONL file of applied selections.
type Journal struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	closed bool
}

// Open opens the journal at path, creating it and its directory if needed.
func Open(path string) (*Journal, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}

	j := &Journal{path: path, file: file}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.Size() == 0 {
		if err := j.writeHeader(); err != nil {
			file.Close()
			return nil, err
		}
	}

	return j, nil
}

// Path returns the journal file path.
func (j *Journal) Path() string {
	return j.path
}

func (j *Journal) writeHeader() error {
	data, err := json.Marshal(schemaHeader{
		SkinselSchemaVersion: SchemaVersion,
		CreatedAt:            time.Now().Unix(),
	})
	if err != nil {
		return err
	}
	_, err = j.file.Write(append(data, '\n'))
	return err
}

// Load reads all entries, oldest first. Malformed lines are skipped.
func (j *Journal) Load() ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return nil, ErrJournalClosed
	}

	if _, err := j.file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek %s: %w", j.path, err)
	}

	entries, err := decode(j.file)

	if _, serr := j.file.Seek(0, io.SeekEnd); serr != nil && err == nil {
		err = serr
	}
	return entries, err
}

func decode(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		if lineNum == 1 {
			var header schemaHeader
			if err := json.Unmarshal(line, &header); err == nil && header.SkinselSchemaVersion > 0 {
				if header.SkinselSchemaVersion > SchemaVersion {
					return nil, fmt.Errorf("unsupported schema version %d (max: %d)",
						header.SkinselSchemaVersion, SchemaVersion)
				}
				continue
			}
		}

		var e Entry
		if err := json.Unmarshal(line, &e); err != nil || e.Validate() != nil {
			slog.Debug("skipping malformed history line", "line", lineNum)
			continue
		}
		entries = append(entries, e)
	}

	if err := scanner.Err(); err != nil {
		return entries, fmt.Errorf("error reading history: %w", err)
	}
	return entries, nil
}

// Append adds an entry to the journal.
func (j *Journal) Append(e Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return ErrJournalClosed
	}

	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if _, err := j.file.Write(append(data, '\n')); err != nil {
		return err
	}
	return j.file.Sync()
}

// Last returns the most recent entry.
func (j *Journal) Last() (Entry, bool, error) {
	entries, err := j.Load()
	if err != nil || len(entries) == 0 {
		return Entry{}, false, err
	}
	return entries[len(entries)-1], true, nil
}

// Compact keeps only the newest keep entries. keep <= 0 keeps everything.
func (j *Journal) Compact(keep int) error {
	if keep <= 0 {
		return nil
	}
	entries, err := j.Load()
	if err != nil {
		return err
	}
	if len(entries) <= keep {
		return nil
	}
	return j.rewrite(entries[len(entries)-keep:])
}

// rewrite replaces the journal with entries, keeping a backup until the new
// file is fully written.
func (j *Journal) rewrite(entries []Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return ErrJournalClosed
	}

	if err := j.file.Close(); err != nil {
		return err
	}
	j.file = nil

	backupPath := j.path + ".bak"
	if err := os.Rename(j.path, backupPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to create backup: %w", err)
	}

	file, err := os.OpenFile(j.path, os.O_RDWR|os.O_CREATE|os.O_APPEND|os.O_TRUNC, 0600)
	if err != nil {
		os.Rename(backupPath, j.path)
		return fmt.Errorf("failed to create new file: %w", err)
	}
	j.file = file

	if err := j.writeHeader(); err != nil {
		return err
	}
	for _, e := range entries {
		data, err := json.Marshal(e)
		if err != nil {
			return err
		}
		if _, err := j.file.Write(append(data, '\n')); err != nil {
			return err
		}
	}
	if err := j.file.Sync(); err != nil {
		return err
	}

	os.Remove(backupPath)
	slog.Debug("compacted history", "path", j.path, "entries", len(entries))
	return nil
}

// Close releases the file handle.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return nil
	}
	j.closed = true

	if j.file != nil {
		err := j.file.Close()
		j.file = nil
		return err
	}
	return nil
}

// Record opens the journal at path, appends e, compacts to
// keep entries and closes it again.
func Record(path string, keep int, e Entry) error {
	j, err := Open(path)
	if err != nil {
		return err
	}
	defer j.Close()

	if err := j.Append(e); err != nil {
		return err
	}
	return j.Compact(keep)
}
