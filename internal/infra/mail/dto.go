package mail

type FollowUpEmailData struct {
	FirstName      string
	CompanyOrYours string
	Step           int
	Tone           string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
