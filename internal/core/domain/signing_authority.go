package domain

import "time"

// TeamSigningAuthority designates a user who may approve spends for a team.
// It is the live source of truth consulted when an approval is recorded.
type TeamSigningAuthority struct {
	TeamID                 string     `json:"teamID"`
	UserID                 string     `json:"userID"`
	IsActive               bool       `json:"isActive"`
	IsIndependentParentRep bool       `json:"isIndependentParentRep"`
	Title                  string     `json:"title,omitempty"`
	AppointedAt            time.Time  `json:"appointedAt"`
	AppointedBy            string     `json:"appointedBy"`
	RevokedAt              *time.Time `json:"revokedAt,omitempty"`
}
