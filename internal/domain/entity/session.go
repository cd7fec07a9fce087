package entity

// SessionStep identifies where a conversation is in the booking flow.
type SessionStep string

const (
	StepInit      SessionStep = "init"
	StepAskName   SessionStep = "ask_name"
	StepAskDate   SessionStep = "ask_date"
	StepAskTime   SessionStep = "ask_time"
	StepAskReason SessionStep = "ask_reason"
	StepConfirm   SessionStep = "confirm"
)

// ConversationSession is the ephemeral per-phone-number state of one booking
// conversation. It is replaced wholesale on every transition; the constructors
// below build each successor state from scratch so a session can only ever
// carry the fields collected up to its current step.
type ConversationSession struct {
	Step   SessionStep `json:"step"`
	Name   string      `json:"name,omitempty"`
	Date   string      `json:"date,omitempty"`
	Time   string      `json:"time,omitempty"`
	Reason string      `json:"reason,omitempty"`
}

// NewSession starts a fresh conversation waiting for the patient's name.
func NewSession() *ConversationSession {
	return &ConversationSession{Step: StepAskName}
}

// WithName moves the conversation to date selection.
func (s *ConversationSession) WithName(name string) *ConversationSession {
	return &ConversationSession{Step: StepAskDate, Name: name}
}

// WithDate moves the conversation to time selection.
func (s *ConversationSession) WithDate(date string) *ConversationSession {
	return &ConversationSession{Step: StepAskTime, Name: s.Name, Date: date}
}

// WithTime moves the conversation to asking for the visit reason.
func (s *ConversationSession) WithTime(tm string) *ConversationSession {
	return &ConversationSession{Step: StepAskReason, Name: s.Name, Date: s.Date, Time: tm}
}

// WithReason moves the conversation to the final confirmation.
func (s *ConversationSession) WithReason(reason string) *ConversationSession {
	return &ConversationSession{Step: StepConfirm, Name: s.Name, Date: s.Date, Time: s.Time, Reason: reason}
}
