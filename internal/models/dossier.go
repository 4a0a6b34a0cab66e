package models

import "time"

// Dossier is the single row of the dossier table.
type Dossier struct {
	ExeBegin       *time.Time `db:"exe_begin"`
	ExeEnd         *time.Time `db:"exe_end"`
	LastSettlement int64      `db:"last_settlement"`
	LastConcil     int64      `db:"last_concil"`
	AuditFields
}
