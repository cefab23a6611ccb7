package conversation

import (
	"context"

	"github.com/salonvoice/booking-api/internal/nlu"
)

// BookingDraft is the slot-filling state of one conversation: whatever
// the customer has said so far about the appointment they want.
type BookingDraft struct {
	Service string `json:"service"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Stylist string `json:"stylist"`
}

// Merge folds newly extracted entities into the draft. Existing values
// win only when the new turn says nothing about them.
func (d *BookingDraft) Merge(res *nlu.Result) {
	if v := res.EntityValue("service"); v != "" {
		d.Service = v
	}
	if v := res.EntityValue("date"); v != "" {
		d.Date = v
	}
	if v := res.EntityValue("time"); v != "" {
		d.Time = v
	}
	if v := res.EntityValue("stylist"); v != "" {
		d.Stylist = v
	}
}

func (d *BookingDraft) Missing() []string {
	var missing []string
	if d.Service == "" {
		missing = append(missing, "service")
	}
	if d.Date == "" {
		missing = append(missing, "date")
	}
	if d.Time == "" {
		missing = append(missing, "time")
	}
	if d.Stylist == "" {
		missing = append(missing, "stylist")
	}
	return missing
}

func (d *BookingDraft) Complete() bool {
	return len(d.Missing()) == 0
}

// SessionStore keeps drafts across turns, keyed by session id.
type SessionStore interface {
	Load(ctx context.Context, sessionID string) (*BookingDraft, error)
	Save(ctx context.Context, sessionID string, draft *BookingDraft) error
	Clear(ctx context.Context, sessionID string) error
}
