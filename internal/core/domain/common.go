package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// BulkResult reports the per-item outcome of an operation applied to a selection.
// A failure on one item never prevents the following items from being attempted.
type BulkResult struct {
	Succeeded []int64         `json:"succeeded"`
	Failed    map[int64]error `json:"-"`
}

// NewBulkResult returns an empty result ready to be filled.
func NewBulkResult() *BulkResult {
	return &BulkResult{Failed: make(map[int64]error)}
}

// Ok records a success for the item.
func (r *BulkResult) Ok(id int64) {
	r.Succeeded = append(r.Succeeded, id)
}

// Fail records a failure for the item.
func (r *BulkResult) Fail(id int64, err error) {
	r.Failed[id] = err
}

// HasFailures reports whether at least one item failed.
func (r *BulkResult) HasFailures() bool {
	return len(r.Failed) > 0
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// MaxDate returns the later of two dates.
func MaxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
