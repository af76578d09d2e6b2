package orchestrators

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/yuin/goldmark"

	"fitclass/internal/adapters/email"
	"fitclass/internal/domain/apperror"
	"fitclass/internal/domain/booking"
	"fitclass/internal/domain/fitnessclass"
)

// ReminderBookingStore defines the ledger interface needed by SendReminders.
type ReminderBookingStore interface {
	ListByClass(ctx context.Context, classID string) ([]booking.Booking, error)
}

// SendRemindersInput carries input for the reminder orchestrator.
type SendRemindersInput struct {
	ClassID     string
	RequesterID string // must be the owning trainer
}

// SendRemindersResult reports the outcome per batch. Delivery is not
// transactional: on a partial failure, Sent reminders stay sent.
type SendRemindersResult struct {
	Sent   int
	Failed int
}

// SendRemindersDeps holds dependencies for SendReminders.
type SendRemindersDeps struct {
	ClassStore   ClassLookupStore
	BookingStore ReminderBookingStore
	Sender       email.Sender
}

// mdRenderer converts the class description markdown for the email body.
// Raw HTML in the input is escaped (WithUnsafe is NOT set).
var mdRenderer = goldmark.New()

// ExecuteSendReminders emails one reminder to every booked member of a class.
// Only the owning trainer may trigger the batch. A failed send does not stop
// the batch; any failure makes the whole operation report a transport error
// alongside the partial result.
// PRE: ClassID resolves; RequesterID owns the class; at least one booking
// POST: One send attempted per booking; result counts successes and failures
func ExecuteSendReminders(ctx context.Context, input SendRemindersInput, deps SendRemindersDeps) (SendRemindersResult, error) {
	class, err := deps.ClassStore.GetByID(ctx, input.ClassID)
	if errors.Is(err, sql.ErrNoRows) {
		return SendRemindersResult{}, apperror.New(apperror.KindNotFound, "class not found")
	}
	if err != nil {
		return SendRemindersResult{}, err
	}

	if class.TrainerID != input.RequesterID {
		slog.Info("reminder_event", "event", "reminder_rejected", "class_id", input.ClassID,
			"requester_id", input.RequesterID, "reason", "not_owner")
		return SendRemindersResult{}, apperror.New(apperror.KindForbidden, "forbidden: not the trainer of this class")
	}

	bookings, err := deps.BookingStore.ListByClass(ctx, input.ClassID)
	if err != nil {
		return SendRemindersResult{}, err
	}
	if len(bookings) == 0 {
		return SendRemindersResult{}, apperror.New(apperror.KindValidation, "no registered members for this class")
	}

	subject := fmt.Sprintf("Gym Reminder: %s", class.Title)
	var result SendRemindersResult
	for _, b := range bookings {
		req := email.SendRequest{
			To:      []string{b.UserEmail},
			Subject: subject,
			HTML:    reminderBody(class, b.UserName),
		}
		if _, err := deps.Sender.Send(ctx, req); err != nil {
			slog.Error("reminder_event", "event", "reminder_send_failed", "class_id", class.ID,
				"booking_id", b.ID, "error", err)
			result.Failed++
			continue
		}
		result.Sent++
	}

	slog.Info("reminder_event", "event", "reminders_dispatched", "class_id", class.ID,
		"sent", result.Sent, "failed", result.Failed)

	if result.Failed > 0 {
		return result, apperror.New(apperror.KindTransport,
			fmt.Sprintf("failed to send %d of %d reminders", result.Failed, len(bookings)))
	}
	return result, nil
}

// reminderBody renders the HTML reminder email for one recipient.
func reminderBody(class fitnessclass.FitnessClass, name string) string {
	var desc bytes.Buffer
	if err := mdRenderer.Convert([]byte(class.Description), &desc); err != nil {
		desc.Reset()
		desc.WriteString(template.HTMLEscapeString(class.Description))
	}

	return fmt.Sprintf(
		"<p>Hi %s,</p>"+
			"<p>This is a reminder for your upcoming class:</p>"+
			"<p><strong>Class:</strong> %s<br>"+
			"<strong>Date &amp; Time:</strong> %s to %s<br>"+
			"<strong>Location:</strong> %s<br>"+
			"<strong>Instructor:</strong> %s</p>"+
			"%s"+
			"<p>We look forward to seeing you there!</p>",
		template.HTMLEscapeString(name),
		template.HTMLEscapeString(class.Title),
		fitnessclass.FormatTime(class.StartDate),
		fitnessclass.FormatTime(class.EndDate),
		template.HTMLEscapeString(class.Location),
		template.HTMLEscapeString(class.TrainerName),
		desc.String(),
	)
}
