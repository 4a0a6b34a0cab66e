package domain

import (
	"fmt"
	"time"
)

// ConcilMemberType distinguishes what a reconciliation member points to.
type ConcilMemberType string

const (
	ConcilEntry ConcilMemberType = "E" // an accounting entry
	ConcilBat   ConcilMemberType = "B" // an imported bank-statement line
)

// ParseConcilMemberType validates a member type tag.
func ParseConcilMemberType(s string) (ConcilMemberType, error) {
	switch t := ConcilMemberType(s); t {
	case ConcilEntry, ConcilBat:
		return t, nil
	}
	return "", fmt.Errorf("unknown reconciliation member type %q", s)
}

// ConcilMember tags one reconciled item.
type ConcilMember struct {
	Type    ConcilMemberType `json:"type"`
	OtherID int64            `json:"otherID"`
}

// ConcilGroup is a reconciliation group: entries and bank lines matched together.
type ConcilGroup struct {
	ID      int64          `json:"id"`
	DValue  time.Time      `json:"dvalue"`
	User    string         `json:"user"`
	Stamp   time.Time      `json:"stamp"`
	Members []ConcilMember `json:"members"`
}

// HasMember reports whether the group already holds the tag.
func (g *ConcilGroup) HasMember(t ConcilMemberType, otherID int64) bool {
	for _, m := range g.Members {
		if m.Type == t && m.OtherID == otherID {
			return true
		}
	}
	return false
}
