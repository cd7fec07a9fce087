package usecase

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"clinic-whatsapp-scheduler/internal/delivery/dto"
	"clinic-whatsapp-scheduler/internal/domain/entity"
	"clinic-whatsapp-scheduler/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

const (
	defaultPatientName = "Paciente"
	defaultReason      = "Consulta"

	// Only the first slots are listed in the prompt to keep the message
	// short; the full slot set is still checked when the patient answers.
	maxSlotsInPrompt = 8
)

const (
	replyGreeting        = "Olá! Sou o assistente do consultório odontológico. Como posso te chamar?"
	replyAskDate         = "Prazer, %s! Informe a data desejada no formato AAAA-MM-DD (ex: 2025-12-30)."
	replyDateFormat      = "Por favor, envie a data no formato AAAA-MM-DD."
	replyNotBusinessDay  = "Nesta data não atendemos. Tente um dia útil."
	replyNoSlots         = "Sem horários livres nesta data. Informe outra data."
	replySlotList        = "Horários disponíveis em %s: %s. Informe o horário desejado (HH:mm)."
	replyTimeFormat      = "Informe o horário no formato HH:mm (ex: 14:30)."
	replyTimeUnavailable = "Horário indisponível. Envie outro horário dentro dos disponíveis."
	replyAskReason       = "Qual o motivo da consulta? (Ex: Limpeza, dor de dente, avaliação)"
	replyConfirm         = "Confirma agendamento para %s às %s para %s? Responda SIM ou NAO."
	replyBookingFailed   = "Não foi possível agendar: %s"
	replyBookingDone     = "Agendamento confirmado para %s. Obrigado, %s!"
	replyCancelled       = "Tudo bem, cancelado. Se precisar, podemos tentar outro horário."
	replyAnswerYesOrNo   = "Por favor, responda SIM ou NAO para confirmar."
	replyTextOnly        = "Desculpe, entendi apenas mensagens de texto."
)

var (
	dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRegex = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// Messenger sends one outbound text message to a phone number. Sends are
// best-effort from the conversation's perspective: a failure is logged but
// never blocks a state transition or a booking commit.
type Messenger interface {
	SendText(ctx context.Context, to, text string) error
}

type ConversationUsecase interface {
	HandleMessage(ctx context.Context, phone, text string) error
	HandleUnsupported(ctx context.Context, phone string) error
}

// conversationUsecase is the per-phone-number finite-state machine that
// drives the booking flow. Every state handles every possible input: invalid
// input reprompts and leaves the session unchanged, so free text can never
// crash or strand a conversation. The session is written before the reply is
// sent.
type conversationUsecase struct {
	log          *logrus.Logger
	sessionRepo  repository.SessionRepository
	availability AvailabilityUsecase
	messenger    Messenger
}

func NewConversationUsecase(
	log *logrus.Logger,
	sessionRepo repository.SessionRepository,
	availability AvailabilityUsecase,
	messenger Messenger,
) ConversationUsecase {
	return &conversationUsecase{
		log:          log,
		sessionRepo:  sessionRepo,
		availability: availability,
		messenger:    messenger,
	}
}

func (u *conversationUsecase) HandleMessage(ctx context.Context, phone, text string) error {
	incoming := strings.TrimSpace(text)

	session, err := u.sessionRepo.Get(ctx, phone)
	if err != nil {
		u.log.Warnf("Failed to load session for %s: %+v", phone, err)
		return err
	}

	if session == nil || session.Step == entity.StepInit {
		if err := u.sessionRepo.Set(ctx, phone, entity.NewSession()); err != nil {
			return err
		}
		u.send(ctx, phone, replyGreeting)
		return nil
	}

	switch session.Step {
	case entity.StepAskName:
		return u.handleAskName(ctx, phone, session, incoming)
	case entity.StepAskDate:
		return u.handleAskDate(ctx, phone, session, incoming)
	case entity.StepAskTime:
		return u.handleAskTime(ctx, phone, session, incoming)
	case entity.StepAskReason:
		return u.handleAskReason(ctx, phone, session, incoming)
	case entity.StepConfirm:
		return u.handleConfirm(ctx, phone, session, incoming)
	default:
		// Unknown step in a stored session: restart the conversation.
		u.log.Warnf("Unknown session step %q for %s, restarting", session.Step, phone)
		if err := u.sessionRepo.Set(ctx, phone, entity.NewSession()); err != nil {
			return err
		}
		u.send(ctx, phone, replyGreeting)
		return nil
	}
}

// HandleUnsupported replies to non-text inbound events.
func (u *conversationUsecase) HandleUnsupported(ctx context.Context, phone string) error {
	u.send(ctx, phone, replyTextOnly)
	return nil
}

func (u *conversationUsecase) handleAskName(ctx context.Context, phone string, session *entity.ConversationSession, incoming string) error {
	name := incoming
	if name == "" {
		name = defaultPatientName
	}

	if err := u.sessionRepo.Set(ctx, phone, session.WithName(name)); err != nil {
		return err
	}
	u.send(ctx, phone, fmt.Sprintf(replyAskDate, name))
	return nil
}

func (u *conversationUsecase) handleAskDate(ctx context.Context, phone string, session *entity.ConversationSession, incoming string) error {
	if !dateRegex.MatchString(incoming) {
		u.send(ctx, phone, replyDateFormat)
		return nil
	}

	availability, err := u.availability.GetAvailability(ctx, incoming)
	if err != nil {
		if err == ErrInvalidDate {
			// Matches the pattern but is not a real date, e.g. 2025-13-45.
			u.send(ctx, phone, replyDateFormat)
			return nil
		}
		u.log.Warnf("Failed to get availability for %s: %+v", incoming, err)
		return err
	}

	if !availability.IsBusinessDay {
		u.send(ctx, phone, replyNotBusinessDay)
		return nil
	}
	if len(availability.Slots) == 0 {
		u.send(ctx, phone, replyNoSlots)
		return nil
	}

	if err := u.sessionRepo.Set(ctx, phone, session.WithDate(incoming)); err != nil {
		return err
	}

	shown := availability.Slots
	if len(shown) > maxSlotsInPrompt {
		shown = shown[:maxSlotsInPrompt]
	}
	u.send(ctx, phone, fmt.Sprintf(replySlotList, incoming, strings.Join(shown, ", ")))
	return nil
}

func (u *conversationUsecase) handleAskTime(ctx context.Context, phone string, session *entity.ConversationSession, incoming string) error {
	if !timeRegex.MatchString(incoming) {
		u.send(ctx, phone, replyTimeFormat)
		return nil
	}

	availability, err := u.availability.GetAvailability(ctx, session.Date)
	if err != nil {
		u.log.Warnf("Failed to re-check availability for %s: %+v", session.Date, err)
		return err
	}
	if !slices.Contains(availability.Slots, incoming) {
		u.send(ctx, phone, replyTimeUnavailable)
		return nil
	}

	if err := u.sessionRepo.Set(ctx, phone, session.WithTime(incoming)); err != nil {
		return err
	}
	u.send(ctx, phone, replyAskReason)
	return nil
}

func (u *conversationUsecase) handleAskReason(ctx context.Context, phone string, session *entity.ConversationSession, incoming string) error {
	reason := incoming
	if reason == "" {
		reason = defaultReason
	}

	if err := u.sessionRepo.Set(ctx, phone, session.WithReason(reason)); err != nil {
		return err
	}
	u.send(ctx, phone, fmt.Sprintf(replyConfirm, session.Date, session.Time, reason))
	return nil
}

func (u *conversationUsecase) handleConfirm(ctx context.Context, phone string, session *entity.ConversationSession, incoming string) error {
	switch strings.ToLower(incoming) {
	case "sim", "s", "confirmo":
		// The availability shown earlier is only advisory; the commit below
		// re-checks the slot atomically and is authoritative.
		result, err := u.availability.Schedule(ctx, &dto.ScheduleRequest{
			PatientName: session.Name,
			Phone:       phone,
			Date:        session.Date,
			Time:        session.Time,
			Reason:      session.Reason,
		})
		if err != nil {
			if clearErr := u.sessionRepo.Clear(ctx, phone); clearErr != nil {
				u.log.Warnf("Failed to clear session for %s: %+v", phone, clearErr)
			}
			u.send(ctx, phone, fmt.Sprintf(replyBookingFailed, err.Error()))
			return nil
		}

		if err := u.sessionRepo.Clear(ctx, phone); err != nil {
			u.log.Warnf("Failed to clear session for %s: %+v", phone, err)
		}
		u.send(ctx, phone, fmt.Sprintf(replyBookingDone, result.HumanTime, session.Name))
		return nil

	case "nao", "não", "n":
		if err := u.sessionRepo.Clear(ctx, phone); err != nil {
			u.log.Warnf("Failed to clear session for %s: %+v", phone, err)
		}
		u.send(ctx, phone, replyCancelled)
		return nil

	default:
		u.send(ctx, phone, replyAnswerYesOrNo)
		return nil
	}
}

// send delivers one outbound message, fire-and-forget.
func (u *conversationUsecase) send(ctx context.Context, phone, text string) {
	if err := u.messenger.SendText(ctx, phone, text); err != nil {
		u.log.Warnf("Failed to send message to %s: %+v", phone, err)
	}
}
