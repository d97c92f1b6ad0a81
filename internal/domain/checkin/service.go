package checkin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"church-checkin-go/internal/domain/member"
	"church-checkin-go/internal/domain/schedule"
	"github.com/google/uuid"
)

const defaultHistoryLimit = 20

// Actor identifies the authenticated user performing a check-in operation.
// CanRecord is true for administrative roles and for users carrying the
// explicit per-user check-in capability flag.
type Actor struct {
	UserID    string
	CanRecord bool
}

type Config struct {
	WindowOpenBefore time.Duration
	WindowCloseAfter time.Duration
	QRCodeTTL        time.Duration
}

func (c Config) withDefaults() Config {
	if c.WindowOpenBefore == 0 {
		c.WindowOpenBefore = schedule.DefaultWindowOpenBefore
	}
	if c.WindowCloseAfter == 0 {
		c.WindowCloseAfter = schedule.DefaultWindowCloseAfter
	}
	if c.QRCodeTTL == 0 {
		c.QRCodeTTL = DefaultQRCodeTTL
	}
	return c
}

type Service struct {
	members   *member.Service
	schedules *schedule.Service
	repo      Repository
	notifier  Notifier
	cfg       Config
	now       func() time.Time
}

func NewService(members *member.Service, schedules *schedule.Service, repo Repository, notifier Notifier, cfg Config) *Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Service{
		members:   members,
		schedules: schedules,
		repo:      repo,
		notifier:  notifier,
		cfg:       cfg.withDefaults(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type GenerateQRResult struct {
	QRCode    string
	Schedule  schedule.ScheduleWithService
	ExpiresAt time.Time
	Payload   Payload
}

// GenerateQR issues a QR token for the caller's linked person on the given
// date (today when nil). The window gate runs here and again at redemption;
// a token issued while the window is valid may still be rejected later.
func (s *Service) GenerateQR(ctx context.Context, userID string, date *time.Time) (*GenerateQRResult, error) {
	person, err := s.members.GetPersonByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	teamIDs, err := s.members.ResolveActiveTeams(ctx, person)
	if err != nil {
		return nil, err
	}

	now := s.now()
	targetDate := now
	if date != nil {
		targetDate = *date
	}

	matches, err := s.schedules.FindSchedulesForDate(ctx, teamIDs, targetDate)
	if err != nil {
		return nil, err
	}
	selected := matches[0]

	existing, err := s.repo.GetBySchedulePerson(ctx, selected.Schedule.ID, person.ID)
	if err != nil && !errors.Is(err, ErrAttendanceNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyCheckedIn
	}

	window, state, err := schedule.EvaluateWindow(selected.Service.Time, selected.Schedule.Date, now, s.cfg.WindowOpenBefore, s.cfg.WindowCloseAfter)
	if err != nil {
		return nil, err
	}
	if state != schedule.WindowValid {
		return nil, &WindowError{State: state, Window: window}
	}

	payload := Payload{
		ScheduleID: selected.Schedule.ID,
		PersonID:   person.ID,
		ServiceID:  selected.Service.ID,
		Date:       selected.Schedule.DateString(),
		Timestamp:  now.UnixMilli(),
	}

	encoded, err := EncodePayload(payload)
	if err != nil {
		return nil, err
	}

	return &GenerateQRResult{
		QRCode:    encoded,
		Schedule:  selected,
		ExpiresAt: window.ClosesAt,
		Payload:   payload,
	}, nil
}

// ValidateQR redeems a QR token: decodes and freshness-checks the payload,
// re-validates the schedule it names, re-evaluates the check-in window and
// records the attendance. On success the result fans out through the
// notifier; the returned attendance is the caller's acknowledgment.
func (s *Service) ValidateQR(ctx context.Context, actor Actor, qrData string) (*Attendance, error) {
	if !actor.CanRecord {
		return nil, ErrCheckInNotAllowed
	}

	payload, err := DecodePayload(qrData)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !payload.Fresh(now, s.cfg.QRCodeTTL) {
		return nil, ErrPayloadExpired
	}

	sws, err := s.schedules.GetWithService(ctx, payload.ScheduleID)
	if err != nil {
		return nil, err
	}

	// Guards against a token replayed against a schedule edited after issuance.
	if sws.Schedule.ServiceID != payload.ServiceID || sws.Schedule.DateString() != payload.Date {
		return nil, ErrPayloadScheduleMismatch
	}

	person, err := s.members.GetPersonByID(ctx, payload.PersonID)
	if err != nil {
		return nil, err
	}

	window, state, err := schedule.EvaluateWindow(sws.Service.Time, sws.Schedule.Date, now, s.cfg.WindowOpenBefore, s.cfg.WindowCloseAfter)
	if err != nil {
		return nil, err
	}
	if state != schedule.WindowValid {
		return nil, &WindowError{State: state, Window: window}
	}

	existing, err := s.repo.GetBySchedulePerson(ctx, sws.Schedule.ID, person.ID)
	if err != nil && !errors.Is(err, ErrAttendanceNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyCheckedIn
	}

	attendance := Attendance{
		ID:            uuid.NewString(),
		ScheduleID:    sws.Schedule.ID,
		PersonID:      person.ID,
		Method:        MethodQRCode,
		CheckedInByID: actor.UserID,
		CheckedInAt:   now,
		QRPayload:     &qrData,
	}

	// The unique constraint resolves the duplicate-scan race; Create reports
	// it as ErrAlreadyCheckedIn, same as the pre-check above.
	if err := s.repo.Create(ctx, &attendance); err != nil {
		return nil, err
	}

	s.notifier.CheckedIn(attendance, fmt.Sprintf("%s checked in to %s", person.Name, sws.Service.Name))

	return &attendance, nil
}

// History lists the caller's attendances, newest first. A caller with no
// linked person gets an empty list, not an error.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]Attendance, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	person, err := s.members.GetPersonByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, member.ErrPersonNotFound) {
			return []Attendance{}, nil
		}
		return nil, err
	}

	return s.repo.ListByPerson(ctx, person.ID, limit)
}
