package mapping

import (
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/models"
)

// ToModelConcilGroup converts the header of a domain ConcilGroup.
func ToModelConcilGroup(d domain.ConcilGroup) models.ConcilGroup {
	return models.ConcilGroup{
		ID:     d.ID,
		DValue: domain.DateOnly(d.DValue),
		UserID: d.User,
		Stamp:  d.Stamp,
	}
}

// ToModelConcilMember converts a member of the group.
func ToModelConcilMember(groupID int64, d domain.ConcilMember) models.ConcilMember {
	return models.ConcilMember{
		ConcilID: groupID,
		Type:     string(d.Type),
		OtherID:  d.OtherID,
	}
}

// ToDomainConcilGroup rebuilds a group from its header and member rows.
func ToDomainConcilGroup(m models.ConcilGroup, members []models.ConcilMember) domain.ConcilGroup {
	d := domain.ConcilGroup{
		ID:      m.ID,
		DValue:  domain.DateOnly(m.DValue),
		User:    m.UserID,
		Stamp:   m.Stamp,
		Members: make([]domain.ConcilMember, 0, len(members)),
	}
	for _, mm := range members {
		d.Members = append(d.Members, domain.ConcilMember{Type: domain.ConcilMemberType(mm.Type), OtherID: mm.OtherID})
	}
	return d
}
