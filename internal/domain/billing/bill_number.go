package billing

import (
	"fmt"
	"strconv"
	"strings"
)

// NextBillNumber computes the next sequential bill number for a prefix and
// year, given the bill numbers already persisted. Numbers have the form
// {prefix}-{year}-{seq} with the sequence zero-padded to three digits; the
// next sequence is one past the maximum numeric suffix found. Numbers that
// do not match the prefix/year scope or carry a non-numeric suffix are
// ignored. Note the scan-then-insert is not guarded by any lock; concurrent
// generation runs can mint duplicates.
func NextBillNumber(prefix string, year int, existing []string) string {
	scope := fmt.Sprintf("%s-%d-", prefix, year)
	maxSeq := 0
	for _, number := range existing {
		if !strings.HasPrefix(number, scope) {
			continue
		}
		seq, err := strconv.Atoi(number[len(scope):])
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return fmt.Sprintf("%s%03d", scope, maxSeq+1)
}

// NumberMinter mints sequential bill numbers within a single generation run.
// It layers an in-memory set of already-minted numbers over the persisted
// numbers so a batch (e.g. the monthly rent run) never reuses a number it
// minted moments earlier, even before those bills are flushed to storage.
type NumberMinter struct {
	minted map[string]struct{}
}

// NewNumberMinter creates an empty minter for one generation run
func NewNumberMinter() *NumberMinter {
	return &NumberMinter{minted: make(map[string]struct{})}
}

// Mint returns the next bill number not present in either the persisted
// numbers or this run's already-minted set, and records it as minted.
func (m *NumberMinter) Mint(prefix string, year int, existing []string) string {
	combined := make([]string, 0, len(existing)+len(m.minted))
	combined = append(combined, existing...)
	for number := range m.minted {
		combined = append(combined, number)
	}
	number := NextBillNumber(prefix, year, combined)
	m.minted[number] = struct{}{}
	return number
}

// Minted returns how many numbers this run has handed out
func (m *NumberMinter) Minted() int {
	return len(m.minted)
}
