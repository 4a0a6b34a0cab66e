package mapping

import (
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/models"
)

// ToDomainDossier converts a model Dossier to a domain Dossier
func ToDomainDossier(m models.Dossier) domain.Dossier {
	return domain.Dossier{
		ExeBegin:       m.ExeBegin,
		ExeEnd:         m.ExeEnd,
		LastSettlement: m.LastSettlement,
		LastConcil:     m.LastConcil,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
