package domain

import "time"

// Dossier is the accounting book: its current exercise and its counters.
type Dossier struct {
	ExeBegin       *time.Time `json:"exeBegin"`
	ExeEnd         *time.Time `json:"exeEnd"`
	LastSettlement int64      `json:"lastSettlement"`
	LastConcil     int64      `json:"lastConcil"`
	AuditFields
}

// PeriodOf classifies an effect date against the current exercise.
// Open bounds never push a date out of the current period.
func (d *Dossier) PeriodOf(deffect time.Time) EntryPeriod {
	deffect = DateOnly(deffect)
	if d.ExeBegin != nil && deffect.Before(DateOnly(*d.ExeBegin)) {
		return PeriodPast
	}
	if d.ExeEnd != nil && deffect.After(DateOnly(*d.ExeEnd)) {
		return PeriodFuture
	}
	return PeriodCurrent
}

// MinEffectDate returns the minimal effect date an entry may have in the ledger:
// the day after the ledger last closing, and never before the exercise start.
// The second result is false when neither bound is known.
func (d *Dossier) MinEffectDate(ledger *Ledger) (time.Time, bool) {
	var minDate time.Time
	found := false
	if d.ExeBegin != nil {
		minDate = DateOnly(*d.ExeBegin)
		found = true
	}
	if ledger != nil && ledger.LastClose != nil {
		next := DateOnly(*ledger.LastClose).AddDate(0, 0, 1)
		if !found || next.After(minDate) {
			minDate = next
		}
		found = true
	}
	return minDate, found
}
