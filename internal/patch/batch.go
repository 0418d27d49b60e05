package patch

import (
	"fmt"

	"go.uber.org/zap"
)

// BatchItem pairs a patch with its target file.
type BatchItem struct {
	FilePath string
	Patch    *Patch
}

// BatchResult reports the outcome of a batch application.
//
// Applied counts patches still in effect when the call returns: the
// full item count on success, zero after a clean rollback, and the
// number of patches left in place when some rollbacks failed.
type BatchResult struct {
	Applied        int
	RolledBack     bool
	Err            error   // triggering failure, nil on success
	RollbackErrors []error // rollback failures, reported distinctly
}

// Success reports whether every item was applied and kept.
func (r *BatchResult) Success() bool {
	return r.Err == nil
}

// FailureReason renders the triggering failure for summaries.
func (r *BatchResult) FailureReason() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// ApplyBatch applies items strictly in order with all-or-nothing
// semantics. On the first failure it stops and reverts every
// previously-applied item in reverse order of application. Rollback
// failures are collected and surfaced, never swallowed: operators must
// be able to tell "nothing changed" from "changes partially remain".
//
// Rollback is a logical reverse-diff apply, not a snapshot restore; it
// depends on the files still matching the forward-patched content. A
// concurrent external modification between apply and rollback is a
// documented hazard, not handled here.
func (e *Engine) ApplyBatch(items []BatchItem) *BatchResult {
	result := &BatchResult{}
	applied := make([]BatchItem, 0, len(items))

	for i, item := range items {
		if err := e.ApplyToFile(item.FilePath, item.Patch); err != nil {
			result.Err = fmt.Errorf("batch item %d (%s): %w", i, item.FilePath, err)
			break
		}
		applied = append(applied, item)
	}

	if result.Err == nil {
		result.Applied = len(applied)
		e.log.Debug("batch applied", zap.Int("count", result.Applied))
		return result
	}

	// Revert in reverse order of application.
	result.RolledBack = true
	remaining := len(applied)
	for i := len(applied) - 1; i >= 0; i-- {
		item := applied[i]
		if err := e.RevertFile(item.FilePath, item.Patch); err != nil {
			result.RollbackErrors = append(result.RollbackErrors,
				fmt.Errorf("rollback of %s: %w", item.FilePath, err))
			continue
		}
		remaining--
	}
	result.Applied = remaining

	e.log.Warn("batch failed, rolled back",
		zap.Int("reverted", len(applied)-remaining),
		zap.Int("still_applied", remaining),
		zap.Error(result.Err))

	return result
}
