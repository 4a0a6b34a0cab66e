package sqlite

import "github.com/SscSPs/bookkeeping_app/internal/models"

// auditText holds the audit columns as stored.
type auditText struct {
	createdAt, createdBy, updatedAt, updatedBy string
}

func (a *auditText) dest() []any {
	return []any{&a.createdAt, &a.createdBy, &a.updatedAt, &a.updatedBy}
}

func (a *auditText) fields() (models.AuditFields, error) {
	createdAt, err := parseStamp(a.createdAt)
	if err != nil {
		return models.AuditFields{}, err
	}
	updatedAt, err := parseStamp(a.updatedAt)
	if err != nil {
		return models.AuditFields{}, err
	}
	return models.AuditFields{
		CreatedAt:     createdAt,
		CreatedBy:     a.createdBy,
		LastUpdatedAt: updatedAt,
		LastUpdatedBy: a.updatedBy,
	}, nil
}

// auditArgs returns the audit columns ready to be bound.
func auditArgs(m models.AuditFields) []any {
	return []any{formatStamp(m.CreatedAt), m.CreatedBy, formatStamp(m.LastUpdatedAt), m.LastUpdatedBy}
}
