package entity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type LeadStatus string

const (
	LeadStatusNew           LeadStatus = "NEW"
	LeadStatusContacted     LeadStatus = "CONTACTED"
	LeadStatusMeetingBooked LeadStatus = "MEETING_BOOKED"
	LeadStatusDead          LeadStatus = "DEAD"
)

// ActiveLeadStatuses são os status que o motor de sequência ainda avalia.
var ActiveLeadStatuses = []LeadStatus{LeadStatusNew, LeadStatusContacted}

func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusMeetingBooked, LeadStatusDead:
		return true
	}
	return false
}

func (s LeadStatus) IsActive() bool {
	return s == LeadStatusNew || s == LeadStatusContacted
}

// CanTransitionTo encodes the lead state machine. MEETING_BOOKED is reachable
// from every state, a booked meeting always wins.
func (s LeadStatus) CanTransitionTo(next LeadStatus) bool {
	if !s.IsValid() {
		return false
	}
	switch next {
	case LeadStatusMeetingBooked:
		return true
	case LeadStatusContacted, LeadStatusDead:
		return s.IsActive()
	}
	return false
}

// Channel é o canal de contato de uma ação de saída.
type Channel string

const (
	ChannelEmail Channel = "EMAIL"
	ChannelCall  Channel = "CALL"
)

const (
	MinScore = 0
	MaxScore = 100

	SourceInbound = "inbound"
)

type Lead struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name,omitempty"`
	Company     string     `json:"company,omitempty"`
	Role        string     `json:"role,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Location    string     `json:"location,omitempty"`
	CompanySize string     `json:"company_size,omitempty"`
	Status      LeadStatus `json:"status"`
	Score       int        `json:"score"`
	Source      string     `json:"source"`
	EmailCount  int        `json:"email_count"`
	CallCount   int        `json:"call_count"`
	LastEmailAt *time.Time `json:"last_email_at,omitempty"`
	LastCallAt  *time.Time `json:"last_call_at,omitempty"`
	LastContact *time.Time `json:"last_contact,omitempty"`
	MeetingTime *time.Time `json:"meeting_time,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewLead cria um lead NEW com email normalizado.
func NewLead(email, name, source string) (*Lead, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidLead)
	}
	now := time.Now().UTC()
	return &Lead{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      strings.TrimSpace(name),
		Status:    LeadStatusNew,
		Score:     50,
		Source:    source,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate rejects records the sequencing engine cannot reason about.
func (l *Lead) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidLead)
	}
	if l.Email == "" {
		return fmt.Errorf("%w: missing email", ErrInvalidLead)
	}
	if !l.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidLead, l.Status)
	}
	if l.EmailCount < 0 || l.CallCount < 0 {
		return fmt.Errorf("%w: negative contact count", ErrInvalidLead)
	}
	if l.Score < MinScore || l.Score > MaxScore {
		return fmt.Errorf("%w: score %d out of range", ErrInvalidLead, l.Score)
	}
	if l.CreatedAt.IsZero() {
		return fmt.Errorf("%w: missing created_at", ErrInvalidLead)
	}
	return nil
}

// LastContactTime returns the latest of LastEmailAt, LastCallAt and
// LastContact, falling back to CreatedAt when none is set.
func (l *Lead) LastContactTime() time.Time {
	var latest time.Time
	for _, t := range []*time.Time{l.LastEmailAt, l.LastCallAt, l.LastContact} {
		if t != nil && t.After(latest) {
			latest = *t
		}
	}
	if latest.IsZero() {
		return l.CreatedAt
	}
	return latest
}

// LeadFields carrega os campos de um upsert ou update parcial.
// Strings vazias e ponteiros nil mantêm o valor atual.
type LeadFields struct {
	Name        string
	Company     string
	Role        string
	Phone       string
	Location    string
	CompanySize string
	Source      string
	Score       *int
	Status      LeadStatus
	MeetingTime *time.Time
}

type LeadRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*Lead, error)
	FindActiveByStatus(ctx context.Context, statuses []LeadStatus) ([]*Lead, error)
	UpsertByEmail(ctx context.Context, email string, fields LeadFields) (*Lead, error)
	// UpdateIfStatus applies fields only while the stored status still equals
	// expected. It reports whether a row was changed.
	UpdateIfStatus(ctx context.Context, id string, expected LeadStatus, fields LeadFields) (bool, error)
	RecordContact(ctx context.Context, id string, channel Channel, step int, at time.Time) (bool, error)
	CountContactsSince(ctx context.Context, channel Channel, since time.Time) (int, error)
}

var (
	ErrLeadNotFound = errors.New("lead não encontrado")
	ErrInvalidLead  = errors.New("invalid lead record")
)
