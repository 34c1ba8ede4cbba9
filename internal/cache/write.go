package cache

import (
	"context"
	"fmt"
)

// WriteKernel inserts a kernel record, keyed by signature hash.
//
// Uses INSERT OR IGNORE for idempotency: writing the same signature twice is
// not an error. The returned inserted flag is false when the signature was
// already cached, which the planner reports as a cache hit.
func (c *Cache) WriteKernel(ctx context.Context, rec KernelRecord) (inserted bool, err error) {
	annotationsJSON, err := marshalAnnotations(rec.Annotations)
	if err != nil {
		return false, fmt.Errorf("write kernel: %w", err)
	}

	res, err := c.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO kernels
		(signature_hash, kind, workunit, policy_kind, annotations, seq)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		rec.SignatureHash,
		rec.Kind,
		rec.Workunit,
		rec.PolicyKind,
		annotationsJSON,
		rec.Seq,
	)
	if err != nil {
		return false, fmt.Errorf("write kernel: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("write kernel: rows affected: %w", err)
	}
	return n > 0, nil
}
