package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a signature hash has no cached record.
var ErrNotFound = errors.New("kernel signature not cached")

// ReadKernel returns the cached record for a signature hash.
// Returns ErrNotFound when the signature has never been written.
func (c *Cache) ReadKernel(ctx context.Context, signatureHash string) (KernelRecord, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT signature_hash, kind, workunit, policy_kind, annotations, seq
		FROM kernels
		WHERE signature_hash = ?
	`, signatureHash)

	rec, err := scanKernel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return KernelRecord{}, ErrNotFound
	}
	if err != nil {
		return KernelRecord{}, fmt.Errorf("read kernel: %w", err)
	}
	return rec, nil
}

// ListKernels returns all cached records in deterministic order:
// ORDER BY seq ASC, signature_hash ASC.
//
// Returns an empty slice (not nil) when the cache is empty.
func (c *Cache) ListKernels(ctx context.Context) ([]KernelRecord, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT signature_hash, kind, workunit, policy_kind, annotations, seq
		FROM kernels
		ORDER BY seq ASC, signature_hash COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list kernels: %w", err)
	}
	defer rows.Close()

	records := []KernelRecord{}
	for rows.Next() {
		rec, err := scanKernel(rows)
		if err != nil {
			return nil, fmt.Errorf("list kernels: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list kernels: %w", err)
	}
	return records, nil
}

// CountKernels returns the number of cached signatures.
func (c *Cache) CountKernels(ctx context.Context) (int64, error) {
	var n int64
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM kernels`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count kernels: %w", err)
	}
	return n, nil
}

// scanner abstracts sql.Row and sql.Rows for scanKernel.
type scanner interface {
	Scan(dest ...any) error
}

func scanKernel(s scanner) (KernelRecord, error) {
	var rec KernelRecord
	var annotationsJSON string

	if err := s.Scan(
		&rec.SignatureHash,
		&rec.Kind,
		&rec.Workunit,
		&rec.PolicyKind,
		&annotationsJSON,
		&rec.Seq,
	); err != nil {
		return KernelRecord{}, err
	}

	annotations, err := unmarshalAnnotations(annotationsJSON)
	if err != nil {
		return KernelRecord{}, err
	}
	rec.Annotations = annotations
	return rec, nil
}
