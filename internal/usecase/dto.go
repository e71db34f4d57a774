package usecase

type ProcessBookingInput struct {
	Payload   []byte
	Signature string
}

type ProcessBookingOutput struct {
	Event   string `json:"event"`
	Applied bool   `json:"applied"`
	LeadID  string `json:"lead_id,omitempty"`
}

type CaptureLeadInput struct {
	Email       string `json:"email" validate:"required,email,max=254"`
	Name        string `json:"name,omitempty" validate:"max=200"`
	Company     string `json:"company,omitempty" validate:"max=200"`
	Title       string `json:"title,omitempty" validate:"max=200"`
	Phone       string `json:"phone,omitempty" validate:"omitempty,e164"`
	Location    string `json:"location,omitempty" validate:"max=200"`
	CompanySize string `json:"company_size,omitempty" validate:"max=20"`
	Source      string `json:"source,omitempty" validate:"max=50"`
}

type CaptureLeadOutput struct {
	ID        string `json:"id,omitempty"`
	Email     string `json:"email"`
	Status    string `json:"status,omitempty"`
	Score     int    `json:"score"`
	Persisted bool   `json:"persisted"`
}

// UpdateCadenceInput é um patch: campos nil mantêm o valor atual.
type UpdateCadenceInput struct {
	EmailFollowUpCount *int    `json:"email_follow_up_count" validate:"omitempty,min=0,max=20"`
	EmailDelayDays     *int    `json:"email_delay_days" validate:"omitempty,min=0,max=60"`
	CallFollowUpCount  *int    `json:"call_follow_up_count" validate:"omitempty,min=0,max=20"`
	CallDelayDays      *int    `json:"call_delay_days" validate:"omitempty,min=0,max=60"`
	MaxEmailsPerDay    *int    `json:"max_emails_per_day" validate:"omitempty,min=0,max=1000"`
	MaxCallsPerDay     *int    `json:"max_calls_per_day" validate:"omitempty,min=0,max=1000"`
	Tone               *string `json:"tone" validate:"omitempty,oneof=professional friendly direct"`
}

type QueueActionsOutput struct {
	EmailsPublished int `json:"emailsPublished"`
	CallsPublished  int `json:"callsPublished"`
	CallsSkipped    int `json:"callsSkipped"`
	Deferred        int `json:"deferred"`
}
