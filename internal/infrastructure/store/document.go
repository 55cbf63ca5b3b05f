// Package store provides the file-backed credential and session stores. Each
// store is the sole writer of one flat JSON document and rewrites it in full
// on every mutation, trading write amplification for crash-safety of the
// visible state.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/homelab/authgate/internal/api/metrics"
)

// readDocument loads the JSON document at path into v. It reports false when
// no document exists yet, which is not an error: stores seed or start empty.
func readDocument(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, fmt.Errorf("decode %s: %w", path, err)
	}
	return true, nil
}

// writeDocument atomically replaces the document at path with the JSON
// encoding of v: write to a temp file in the same directory, fsync, rename.
// The store name labels the write metrics.
func writeDocument(path, store string, v any) error {
	start := time.Now()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s document: %w", store, err)
	}

	if err := replaceFile(path, data); err != nil {
		metrics.StoreWriteErrors.WithLabelValues(store).Inc()
		return fmt.Errorf("persist %s document: %w", store, err)
	}

	metrics.StoreWriteDuration.WithLabelValues(store).Observe(time.Since(start).Seconds())
	return nil
}

func replaceFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
