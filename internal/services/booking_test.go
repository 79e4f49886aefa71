package services

import (
	"context"
	"errors"
	"testing"

	"eventdesk/internal/domain"
)

func TestBookingService_CreateAttendeeBooking(t *testing.T) {
	f := newFixture()
	event := mustCreateEvent(t, f, "org-1")

	booking, err := f.booking.CreateAttendeeBooking(context.Background(), event.ID, "user-1")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if booking.Type != domain.BookingTypeAttendee {
		t.Errorf("type = %q, want attendee", booking.Type)
	}
	if booking.RegistrationStatus != domain.StatusPending {
		t.Errorf("status = %q, want pending", booking.RegistrationStatus)
	}

	if _, err := f.booking.CreateAttendeeBooking(context.Background(), "event-missing", "user-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown event, got %v", err)
	}
}

func TestBookingService_InviteSpeaker_StartsConfirmed(t *testing.T) {
	f := newFixture()
	event := mustCreateEvent(t, f, "org-1")

	booking, err := f.booking.InviteSpeaker(context.Background(), event.ID, "org-1", "speaker-1")
	if err != nil {
		t.Fatalf("invite speaker: %v", err)
	}
	if booking.Type != domain.BookingTypeSpeaker {
		t.Errorf("type = %q, want speaker", booking.Type)
	}
	if booking.RegistrationStatus != domain.StatusConfirmed {
		t.Errorf("status = %q, want confirmed", booking.RegistrationStatus)
	}

	if _, err := f.booking.InviteSpeaker(context.Background(), event.ID, "not-owner", "speaker-2"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner invite, got %v", err)
	}
}

func TestBookingService_OneBookingPerUserPerEvent(t *testing.T) {
	f := newFixture()
	event := mustCreateEvent(t, f, "org-1")

	if _, err := f.booking.InviteSpeaker(context.Background(), event.ID, "org-1", "user-1"); err != nil {
		t.Fatalf("invite: %v", err)
	}
	// Uniqueness holds across booking types.
	if _, err := f.booking.CreateAttendeeBooking(context.Background(), event.ID, "user-1"); !errors.Is(err, domain.ErrDuplicateBooking) {
		t.Fatalf("expected ErrDuplicateBooking, got %v", err)
	}

	// A different event is fine.
	other := mustCreateEvent(t, f, "org-1")
	if _, err := f.booking.CreateAttendeeBooking(context.Background(), other.ID, "user-1"); err != nil {
		t.Fatalf("booking other event: %v", err)
	}
}

func TestBookingService_CancelAttendeeBooking(t *testing.T) {
	f := newFixture()
	event := mustCreateEvent(t, f, "org-1")
	booking, err := f.booking.CreateAttendeeBooking(context.Background(), event.ID, "user-1")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	if err := f.booking.CancelAttendeeBooking(context.Background(), booking.ID, "someone-else"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for other user, got %v", err)
	}
	if err := f.booking.CancelAttendeeBooking(context.Background(), booking.ID, "user-1"); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// Cancellation deletes the row, so the user can book again.
	if _, err := f.booking.CreateAttendeeBooking(context.Background(), event.ID, "user-1"); err != nil {
		t.Fatalf("rebook after cancel: %v", err)
	}
}

func TestBookingService_CancelAttendeeBooking_SpeakerRejected(t *testing.T) {
	f := newFixture()
	event := mustCreateEvent(t, f, "org-1")
	booking, err := f.booking.InviteSpeaker(context.Background(), event.ID, "org-1", "speaker-1")
	if err != nil {
		t.Fatalf("invite: %v", err)
	}

	if err := f.booking.CancelAttendeeBooking(context.Background(), booking.ID, "speaker-1"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput cancelling a speaker booking, got %v", err)
	}
}

func TestBookingService_RespondAsSpeaker(t *testing.T) {
	f := newFixture()
	event := mustCreateEvent(t, f, "org-1")
	booking, err := f.booking.InviteSpeaker(context.Background(), event.ID, "org-1", "speaker-1")
	if err != nil {
		t.Fatalf("invite: %v", err)
	}

	// Invitations start confirmed, so a direct response is an invalid
	// transition until the organizer resets it.
	_, err = f.booking.RespondAsSpeaker(context.Background(), booking.ID, "speaker-1", true)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on confirmed invite, got %v", err)
	}

	if _, err := f.booking.ResetToPending(context.Background(), booking.ID, "org-1"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	declined, err := f.booking.RespondAsSpeaker(context.Background(), booking.ID, "speaker-1", false)
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if declined.RegistrationStatus != domain.StatusDeclined {
		t.Errorf("status = %q, want declined", declined.RegistrationStatus)
	}

	// Only the invited user may answer.
	if _, err := f.booking.ResetToPending(context.Background(), booking.ID, "org-1"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := f.booking.RespondAsSpeaker(context.Background(), booking.ID, "someone-else", true); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestBookingService_ResetToPending_Idempotent(t *testing.T) {
	f := newFixture()
	event := mustCreateEvent(t, f, "org-1")
	booking, err := f.booking.CreateAttendeeBooking(context.Background(), event.ID, "user-1")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	// Already pending: reset is a no-op success, repeatedly.
	for i := 0; i < 2; i++ {
		got, err := f.booking.ResetToPending(context.Background(), booking.ID, "org-1")
		if err != nil {
			t.Fatalf("reset %d: %v", i, err)
		}
		if got.RegistrationStatus != domain.StatusPending {
			t.Fatalf("reset %d: status = %q, want pending", i, got.RegistrationStatus)
		}
	}

	if _, err := f.booking.SetAttendeeStatus(context.Background(), booking.ID, "org-1", domain.StatusDeclined); err != nil {
		t.Fatalf("decline: %v", err)
	}
	got, err := f.booking.ResetToPending(context.Background(), booking.ID, "org-1")
	if err != nil {
		t.Fatalf("reset after decline: %v", err)
	}
	if got.RegistrationStatus != domain.StatusPending {
		t.Errorf("status = %q, want pending", got.RegistrationStatus)
	}
}

func TestBookingService_SetAttendeeStatus(t *testing.T) {
	f := newFixture()
	event := mustCreateEvent(t, f, "org-1")
	booking, err := f.booking.CreateAttendeeBooking(context.Background(), event.ID, "user-1")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	if _, err := f.booking.SetAttendeeStatus(context.Background(), booking.ID, "org-1", domain.StatusPending); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for target pending, got %v", err)
	}
	if _, err := f.booking.SetAttendeeStatus(context.Background(), booking.ID, "not-owner", domain.StatusConfirmed); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	confirmed, err := f.booking.SetAttendeeStatus(context.Background(), booking.ID, "org-1", domain.StatusConfirmed)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.RegistrationStatus != domain.StatusConfirmed {
		t.Errorf("status = %q, want confirmed", confirmed.RegistrationStatus)
	}

	// No longer pending: a second decision is an invalid transition.
	_, err = f.booking.SetAttendeeStatus(context.Background(), booking.ID, "org-1", domain.StatusDeclined)
	var transitionErr *domain.InvalidTransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
	if transitionErr.Current != domain.StatusConfirmed || transitionErr.Attempted != domain.StatusDeclined {
		t.Errorf("transition error = %+v", transitionErr)
	}
}

func TestBookingService_RemoveSpeaker(t *testing.T) {
	f := newFixture()
	event := mustCreateEvent(t, f, "org-1")
	booking, err := f.booking.InviteSpeaker(context.Background(), event.ID, "org-1", "speaker-1")
	if err != nil {
		t.Fatalf("invite: %v", err)
	}

	if err := f.booking.RemoveSpeaker(context.Background(), booking.ID, "not-owner"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := f.booking.RemoveSpeaker(context.Background(), booking.ID, "org-1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := f.bookings.GetByID(context.Background(), booking.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("booking still present after removal, err=%v", err)
	}
}
