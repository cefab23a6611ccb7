package conversation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/salonvoice/booking-api/internal/domain/appointment"
	"github.com/salonvoice/booking-api/internal/httperr"
	"github.com/salonvoice/booking-api/internal/models"
	"github.com/salonvoice/booking-api/internal/nlu"
	"github.com/salonvoice/booking-api/internal/timezone"
	ucappointment "github.com/salonvoice/booking-api/internal/usecase/appointment"
)

const (
	bookingIntent = "booking"

	fallbackReply = "I'm sorry, I didn't quite understand that. Could you rephrase?"
)

// Reply is what one conversation turn produces. Appointment is non-nil
// only when a booking was actually committed this turn.
type Reply struct {
	SessionID   string              `json:"session_id"`
	Text        string              `json:"text"`
	Intent      nlu.Intent          `json:"intent"`
	Entities    []nlu.Entity        `json:"entities"`
	Appointment *models.Appointment `json:"appointment,omitempty"`
}

// Flow maps detected booking intents onto the appointment create use
// case. Anything below the confidence threshold, and any turn with
// missing entities, gets a clarifying prompt — never a partial booking.
type Flow struct {
	detector      nlu.IntentDetector
	sessions      SessionStore
	repo          domain.Repository
	create        *ucappointment.CreateAppointment
	minConfidence float64
}

func NewFlow(
	detector nlu.IntentDetector,
	sessions SessionStore,
	repo domain.Repository,
	create *ucappointment.CreateAppointment,
	minConfidence float64,
) *Flow {
	return &Flow{
		detector:      detector,
		sessions:      sessions,
		repo:          repo,
		create:        create,
		minConfidence: minConfidence,
	}
}

func (f *Flow) HandleMessage(
	ctx context.Context,
	customerID uint,
	sessionID string,
	message string,
) (*Reply, error) {

	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	res, err := f.detector.DetectIntent(ctx, message, sessionID)
	if err != nil {
		return nil, err
	}

	reply := &Reply{
		SessionID: sessionID,
		Intent:    res.Intent,
		Entities:  res.Entities,
	}

	if res.Intent.Name != bookingIntent || res.Intent.Confidence < f.minConfidence {
		reply.Text = res.ReplyText
		if reply.Text == "" {
			reply.Text = fallbackReply
		}
		return reply, nil
	}

	draft, err := f.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	draft.Merge(res)

	if missing := draft.Missing(); len(missing) > 0 {
		if err := f.sessions.Save(ctx, sessionID, draft); err != nil {
			return nil, err
		}
		reply.Text = promptForMissing(missing)
		return reply, nil
	}

	ap, err := f.book(ctx, customerID, draft)
	switch {
	case err == nil:
		if err := f.sessions.Clear(ctx, sessionID); err != nil {
			return nil, err
		}
		if tracker, ok := f.detector.(nlu.EventSender); ok {
			tracker.SendEvent(ctx, sessionID, "booking_confirmed", map[string]any{
				"appointment_id": ap.ID,
				"start_time":     ap.StartTime,
			})
		}
		reply.Appointment = ap
		reply.Text = fmt.Sprintf(
			"You're booked for a %s with %s on %s at %s. See you then!",
			draft.Service, draft.Stylist, draft.Date, draft.Time,
		)
		return reply, nil

	case httperr.IsKind(err, httperr.KindConflict):
		// keep the rest of the draft, ask for another time
		draft.Time = ""
		if err := f.sessions.Save(ctx, sessionID, draft); err != nil {
			return nil, err
		}
		reply.Text = "That time is already taken. What other time would work for you?"
		return reply, nil

	case httperr.IsBusiness(err, "service_not_found"):
		draft.Service = ""
		if err := f.sessions.Save(ctx, sessionID, draft); err != nil {
			return nil, err
		}
		reply.Text = "I couldn't find that service on our menu. Which service would you like?"
		return reply, nil

	case httperr.IsBusiness(err, "staff_not_found"):
		draft.Stylist = ""
		if err := f.sessions.Save(ctx, sessionID, draft); err != nil {
			return nil, err
		}
		reply.Text = "I couldn't find that stylist. Who would you like to book with?"
		return reply, nil

	case httperr.IsBusiness(err, "staff_not_at_branch"),
		httperr.IsBusiness(err, "staff_inactive"),
		httperr.IsBusiness(err, "staff_cannot_perform_service"):
		draft.Stylist = ""
		if err := f.sessions.Save(ctx, sessionID, draft); err != nil {
			return nil, err
		}
		reply.Text = "That stylist can't take this booking. Who else would you like to book with?"
		return reply, nil

	case httperr.IsKind(err, httperr.KindValidation):
		draft.Date = ""
		draft.Time = ""
		if err := f.sessions.Save(ctx, sessionID, draft); err != nil {
			return nil, err
		}
		reply.Text = "I didn't catch a valid date and time. When would you like to come in?"
		return reply, nil

	default:
		return nil, err
	}
}

func (f *Flow) book(
	ctx context.Context,
	customerID uint,
	draft *BookingDraft,
) (*models.Appointment, error) {

	service, err := f.repo.GetServiceByName(ctx, draft.Service)
	if err != nil {
		return nil, err
	}

	staff, err := f.repo.GetStaffByName(ctx, 0, draft.Stylist)
	if err != nil {
		return nil, err
	}

	branch, err := f.repo.GetBranch(ctx, staff.BranchID)
	if err != nil {
		return nil, err
	}

	start, err := parseStart(draft.Date, draft.Time, branch.Timezone)
	if err != nil {
		return nil, err
	}

	return f.create.Execute(ctx, ucappointment.CreateAppointmentInput{
		CustomerID: customerID,
		StaffID:    staff.ID,
		ServiceID:  service.ID,
		BranchID:   branch.ID,
		StartTime:  start,
	})
}

func parseStart(date, hm, tz string) (time.Time, error) {
	hm = strings.TrimSpace(hm)
	if len(hm) == 4 { // "9:30"
		hm = "0" + hm
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		date+" "+hm,
		timezone.Location(tz),
	)
	if err != nil {
		return time.Time{}, httperr.ErrValidation("invalid_date_or_time")
	}
	return start, nil
}

func promptForMissing(missing []string) string {
	questions := map[string]string{
		"service": "What service would you like to book?",
		"date":    "What date would you like to come in?",
		"time":    "What time would you prefer?",
		"stylist": "Which stylist would you like to book with?",
	}

	if len(missing) == 1 {
		return questions[missing[0]]
	}
	return fmt.Sprintf(
		"I just need a couple more details: your preferred %s.",
		strings.Join(missing, " and "),
	)
}
