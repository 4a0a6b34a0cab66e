package domain

// EntryRow is an entry as edited inline: every editable field is kept as the raw
// text typed by the user, next to flags telling whether a computed default may
// still overwrite it.
//
// Error and Warning are transient; they are recomputed from scratch on every
// validation pass and are never persisted.
type EntryRow struct {
	Number int64       `json:"number"`
	Status EntryStatus `json:"status"`
	Period EntryPeriod `json:"period"`

	DOpe        string `json:"dope"`
	DEffect     string `json:"deffect"`
	Label       string `json:"label"`
	Ref         string `json:"ref"`
	Notes       string `json:"notes"`
	Ledger      string `json:"ledger"`
	Account     string `json:"account"`
	Currency    string `json:"currency"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
	OpeTemplate string `json:"opeTemplate"`

	DOpeSet     bool `json:"dopeSet"`
	DEffectSet  bool `json:"deffectSet"`
	CurrencySet bool `json:"currencySet"`

	SettlementNumber int64 `json:"settlementNumber"`
	ConcilID         int64 `json:"concilID"`

	Error   string `json:"error"`
	Warning string `json:"warning"`
}

// SetError records msg as the row error; the last call wins.
func (r *EntryRow) SetError(msg string) {
	r.Error = msg
}

// SetWarning records msg as the row warning; the last call wins.
func (r *EntryRow) SetWarning(msg string) {
	r.Warning = msg
}

// ResetMessages clears both error and warning.
func (r *EntryRow) ResetMessages() {
	r.Error = ""
	r.Warning = ""
}

// IsCommittable reports whether the row carries no error.
func (r *EntryRow) IsCommittable() bool {
	return r.Error == ""
}
