package entity

import "time"

type ConsultationStatus string

const (
	ConsultationPending   ConsultationStatus = "pending"
	ConsultationScheduled ConsultationStatus = "scheduled"
	ConsultationEmailed   ConsultationStatus = "emailed"
	ConsultationCompleted ConsultationStatus = "completed"
	ConsultationCancelled ConsultationStatus = "cancelled"
)

// Final reports whether no further status changes are allowed.
func (s ConsultationStatus) Final() bool {
	return s == ConsultationCompleted || s == ConsultationCancelled
}

type InviteChannel string

const (
	InviteChannelNone  InviteChannel = ""
	InviteChannelGraph InviteChannel = "graph"
	InviteChannelEmail InviteChannel = "email"
)

type Consultation struct {
	ID          string             `db:"id"`
	Name        string             `db:"name"`
	Email       string             `db:"email"`
	Company     string             `db:"company"`
	FirmType    string             `db:"firm_type"`
	Phone       string             `db:"phone"`
	Interests   []string           `db:"-"`
	Message     string             `db:"message"`
	Timezone    string             `db:"timezone"`
	PreferredAt time.Time          `db:"preferred_at"`
	Duration    time.Duration      `db:"-"`
	Status      ConsultationStatus `db:"status"`
	Channel     InviteChannel      `db:"channel"`
	EventID     string             `db:"event_id"`
	InviteKey   string             `db:"invite_key"`
	CreatedAt   time.Time          `db:"created_at"`
	UpdatedAt   time.Time          `db:"updated_at"`
}

func (c Consultation) EndsAt() time.Time {
	return c.PreferredAt.Add(c.Duration)
}
