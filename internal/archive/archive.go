// Package archive keeps a compressed snapshot of the activity a persona
// was generated from.
package archive

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/suykerbuyk/persona-gen/internal/activity"
	"github.com/suykerbuyk/persona-gen/internal/errs"
)

// Path returns the deterministic snapshot path for username.
func Path(archiveDir, username string) string {
	return filepath.Join(archiveDir, username+"_activity.jsonl.zst")
}

// Write stores coll as zstd-compressed JSON lines, one record per line,
// replacing any earlier snapshot for username. Returns the archive path.
func Write(archiveDir, username string, coll activity.Collection) (string, error) {
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return "", errs.Filesystem("create archive dir", archiveDir, err)
	}

	destPath := Path(archiveDir, username)
	dest, err := os.Create(destPath)
	if err != nil {
		return "", errs.Filesystem("create archive", destPath, err)
	}
	defer dest.Close()

	encoder, err := zstd.NewWriter(dest)
	if err != nil {
		return "", fmt.Errorf("create zstd encoder: %w", err)
	}

	enc := json.NewEncoder(encoder)
	enc.SetEscapeHTML(false)
	for _, r := range coll {
		if err := enc.Encode(r); err != nil {
			encoder.Close()
			return "", fmt.Errorf("compress: %w", err)
		}
	}

	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("finalize compression: %w", err)
	}
	if err := dest.Close(); err != nil {
		return "", errs.Filesystem("close archive", destPath, err)
	}

	return destPath, nil
}

// Read decodes a snapshot written by Write.
func Read(archivePath string) (activity.Collection, error) {
	src, err := os.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer src.Close()

	decoder, err := zstd.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer decoder.Close()

	var coll activity.Collection
	scanner := bufio.NewScanner(decoder)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		var r activity.Record
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			return nil, fmt.Errorf("decode record %d: %w", len(coll)+1, err)
		}
		coll = append(coll, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}
	return coll, nil
}
