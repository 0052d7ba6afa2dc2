package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"fieldbook/config"
	"fieldbook/infras/otel/mocks"
	bookingMocks "fieldbook/internal/domains/booking/mocks"
	bookingModel "fieldbook/internal/domains/booking/model"
	fieldMocks "fieldbook/internal/domains/field/mocks"
	fieldModel "fieldbook/internal/domains/field/model"
	reportMocks "fieldbook/internal/domains/report/mocks"
	sessionMocks "fieldbook/internal/domains/session/mocks"
	"fieldbook/internal/domains/session/model"
	"fieldbook/internal/domains/session/service"
	userMocks "fieldbook/internal/domains/user/mocks"
	userModel "fieldbook/internal/domains/user/model"
	notifierMocks "fieldbook/internal/notifications/mocks"
	"fieldbook/shared/constant"
	"fieldbook/shared/failure"
	"fieldbook/shared/timezone"
)

type sessionMockSet struct {
	repo        *sessionMocks.MockSession
	bookingRepo *bookingMocks.MockBooking
	reportRepo  *reportMocks.MockReport
	fieldRepo   *fieldMocks.MockField
	userRepo    *userMocks.MockUser
	notifier    *notifierMocks.MockNotifier
}

func newSessionService(ctrl *gomock.Controller) (service.Session, sessionMockSet) {
	set := sessionMockSet{
		repo:        sessionMocks.NewMockSession(ctrl),
		bookingRepo: bookingMocks.NewMockBooking(ctrl),
		reportRepo:  reportMocks.NewMockReport(ctrl),
		fieldRepo:   fieldMocks.NewMockField(ctrl),
		userRepo:    userMocks.NewMockUser(ctrl),
		notifier:    notifierMocks.NewMockNotifier(ctrl),
	}

	cfg := &config.Config{}

	svc := service.New(set.repo, set.bookingRepo, set.reportRepo, set.fieldRepo, set.userRepo, set.notifier, cfg, mocks.NewOtel())

	return svc, set
}

func hunterContext(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleHunter)
}

func TestSessionService_EnsureForBooking(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newSessionService(ctrl)

	confirmedToday := bookingModel.Booking{
		ID:          "booking-id",
		FieldID:     "field-id",
		HunterID:    "hunter-id",
		BookingDate: timezone.Now(),
		Status:      bookingModel.StatusConfirmed,
	}

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantErr   bool
		wantKind  failure.Kind
	}{
		{
			name: "creates the session on the hunt day",
			ctx:  hunterContext("hunter-id"),
			setupMock: func() {
				set.bookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedToday, nil)

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.HuntSession{}, nil)

				set.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, session model.HuntSession) error {
						assert.Equal(t, "booking-id", session.BookingID)
						assert.Equal(t, model.StatusNotStarted, session.Status)

						return nil
					})
			},
		},
		{
			name: "returns the existing session",
			ctx:  hunterContext("hunter-id"),
			setupMock: func() {
				set.bookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedToday, nil)

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.HuntSession{ID: "session-id", BookingID: "booking-id", Status: model.StatusActive}, nil)
			},
		},
		{
			name: "booking not found",
			ctx:  hunterContext("hunter-id"),
			setupMock: func() {
				set.bookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingModel.Booking{}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindNotFound,
		},
		{
			name: "booking belongs to another hunter",
			ctx:  hunterContext("someone-else"),
			setupMock: func() {
				set.bookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedToday, nil)
			},
			wantErr: true,
		},
		{
			name: "pending booking cannot open a session",
			ctx:  hunterContext("hunter-id"),
			setupMock: func() {
				pending := confirmedToday
				pending.Status = bookingModel.StatusPending

				set.bookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pending, nil)
			},
			wantErr:  true,
			wantKind: failure.KindInvalidSequence,
		},
		{
			name: "sessions open on the hunt day only",
			ctx:  hunterContext("hunter-id"),
			setupMock: func() {
				tomorrow := confirmedToday
				tomorrow.BookingDate = timezone.Now().AddDate(0, 0, 1)

				set.bookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(tomorrow, nil)
			},
			wantErr:  true,
			wantKind: failure.KindInvalidSequence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.EnsureForBooking(tt.ctx, "booking-id")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantKind != "" {
					assert.True(t, failure.IsKind(err, tt.wantKind))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "booking-id", result.BookingID)
			}
		})
	}
}

func TestSessionService_Start(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newSessionService(ctrl)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantKind  failure.Kind
	}{
		{
			name: "starts a fresh session",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.HuntSession{ID: "session-id", BookingID: "booking-id", HunterID: "hunter-id", Status: model.StatusNotStarted}, nil)

				set.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				set.bookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingModel.Booking{ID: "booking-id"}, nil).
					AnyTimes()

				set.fieldRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(fieldModel.Field{ID: "field-id"}, nil).
					AnyTimes()

				set.userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{ID: "user-id"}, nil).
					AnyTimes()

				set.notifier.EXPECT().
					HuntStarted(gomock.Any(), gomock.Any()).
					AnyTimes()
			},
		},
		{
			name: "cannot start an active session twice",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.HuntSession{ID: "session-id", HunterID: "hunter-id", Status: model.StatusActive}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindInvalidSequence,
		},
		{
			name: "session not found",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.HuntSession{}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Start(hunterContext("hunter-id"), "session-id")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, failure.IsKind(err, tt.wantKind))
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("another hunter cannot start the session", func(t *testing.T) {
		set.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.HuntSession{ID: "session-id", HunterID: "hunter-id", Status: model.StatusNotStarted}, nil)

		err := svc.Start(hunterContext("someone-else"), "session-id")

		assert.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
	})
}

func TestSessionService_End(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newSessionService(ctrl)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantKind  failure.Kind
	}{
		{
			name: "ends a reported session",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.HuntSession{ID: "session-id", HunterID: "hunter-id", Status: model.StatusActive}, nil)

				set.reportRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				set.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "refuses to end before the report is filed",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.HuntSession{ID: "session-id", HunterID: "hunter-id", Status: model.StatusActive}, nil)

				set.reportRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantKind: failure.KindInvalidSequence,
		},
		{
			name: "cannot end a session that never started",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.HuntSession{ID: "session-id", HunterID: "hunter-id", Status: model.StatusNotStarted}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindInvalidSequence,
		},
		{
			name: "cannot end a completed session",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.HuntSession{ID: "session-id", HunterID: "hunter-id", Status: model.StatusCompleted}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindInvalidSequence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.End(hunterContext("hunter-id"), "session-id")

			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, failure.IsKind(err, tt.wantKind))
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("another hunter cannot end the session", func(t *testing.T) {
		set.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.HuntSession{ID: "session-id", HunterID: "hunter-id", Status: model.StatusActive}, nil)

		err := svc.End(hunterContext("someone-else"), "session-id")

		assert.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
	})
}

func TestSessionService_GetByBooking(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newSessionService(ctrl)

	t.Run("found", func(t *testing.T) {
		set.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.HuntSession{ID: "session-id", BookingID: "booking-id", Status: model.StatusActive}, nil)

		result, err := svc.GetByBooking(context.Background(), "booking-id")

		assert.NoError(t, err)
		assert.Equal(t, "session-id", result.ID)
	})

	t.Run("not found", func(t *testing.T) {
		set.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.HuntSession{}, nil)

		_, err := svc.GetByBooking(context.Background(), "booking-id")

		assert.Error(t, err)
		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})
}
