package sqlite

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// readJSONL reads a JSONL file and returns each non-empty, parseable line as
// a json.RawMessage. Malformed lines are skipped.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// viewArchive implements types.ViewArchive.
type viewArchive struct {
	b *Backend
}

func (a *viewArchive) ExportViews(ctx context.Context, path string) (int, error) {
	var lines []json.RawMessage
	err := a.b.withDB(func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, `SELECT `+viewColumns+` FROM saved_views ORDER BY entity, name`)
		if err != nil {
			return fmt.Errorf("list views: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			v, err := scanView(rows)
			if err != nil {
				return err
			}
			line, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("encode view %s: %w", v.ID, err)
			}
			lines = append(lines, line)
		}
		return rows.Err()
	})
	if err != nil {
		return 0, fmt.Errorf("export views: %w", err)
	}
	if err := writeJSONL(path, lines); err != nil {
		return 0, fmt.Errorf("export views: %w", err)
	}
	return len(lines), nil
}

// ImportViews upserts views by ID. A view keeps its ID, version and
// timestamps; invalid views and name clashes are logged and skipped.
func (a *viewArchive) ImportViews(ctx context.Context, path string) (int, error) {
	lines, err := readJSONL(path)
	if err != nil {
		return 0, fmt.Errorf("import views: %w", err)
	}
	imported := 0
	err = a.b.withTx(ctx, func(tx *sql.Tx) error {
		for i, line := range lines {
			var v types.SavedView
			if err := json.Unmarshal(line, &v); err != nil {
				a.b.logger.Warn("skipping view", "line", i+1, "error", err)
				continue
			}
			v.Name = strings.TrimSpace(v.Name)
			if v.ID == "" {
				v.ID = generateUUID()
			}
			if v.Version < 1 {
				v.Version = 1
			}
			if err := importView(ctx, tx, v); err != nil {
				if isSkippable(err) {
					a.b.logger.Warn("skipping view", "line", i+1, "name", v.Name, "error", err)
					continue
				}
				return err
			}
			imported++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("import views: %w", err)
	}
	return imported, nil
}

func importView(ctx context.Context, tx *sql.Tx, v types.SavedView) error {
	if err := checkEntity(v.Entity); err != nil {
		return err
	}
	if err := validateView(v); err != nil {
		return err
	}
	if err := checkNameFree(ctx, tx, v.Entity, v.Name, v.ID); err != nil {
		return err
	}
	if v.IsDefault {
		if err := clearDefault(ctx, tx, v.Entity); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM saved_views WHERE view_id = ?`, v.ID); err != nil {
		return err
	}
	return insertView(ctx, tx, v)
}

func isSkippable(err error) bool {
	for _, target := range []error{
		types.ErrUnknownEntity, types.ErrViewNameRequired, types.ErrViewNameTaken, types.ErrInvalidScope,
		types.ErrNoVisibleColumns, types.ErrInvalidSort, types.ErrInvalidHeaderLayout, types.ErrInvalidPageSize,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
