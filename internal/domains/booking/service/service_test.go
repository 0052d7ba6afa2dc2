package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"fieldbook/config"
	"fieldbook/infras/otel/mocks"
	bookingMocks "fieldbook/internal/domains/booking/mocks"
	"fieldbook/internal/domains/booking/model"
	"fieldbook/internal/domains/booking/model/dto"
	"fieldbook/internal/domains/booking/service"
	fieldMocks "fieldbook/internal/domains/field/mocks"
	fieldModel "fieldbook/internal/domains/field/model"
	userMocks "fieldbook/internal/domains/user/mocks"
	userModel "fieldbook/internal/domains/user/model"
	notifierMocks "fieldbook/internal/notifications/mocks"
	"fieldbook/shared/cache"
	cacheMocks "fieldbook/shared/cache/mocks"
	"fieldbook/shared/constant"
	"fieldbook/shared/failure"
	"fieldbook/shared/timezone"
)

func hunterContext(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleHunter)
}

func adminContext(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func outfitterContext(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleOutfitter)
}

func TestBookingService_CheckAvailability(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockFieldRepo := fieldMocks.NewMockField(ctrl)
	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockNotifier := notifierMocks.NewMockNotifier(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockFieldRepo, mockUserRepo, mockNotifier, cfg, mockCache, mockOtel)

	day := timezone.Format(timezone.Now(), constant.DayFormat)
	field := fieldModel.Field{
		ID:       "field-id",
		Name:     "Highland Estate",
		Capacity: 10,
	}

	tests := []struct {
		name          string
		req           dto.CheckAvailabilityRequest
		setupMock     func()
		wantErr       bool
		wantAvailable bool
		wantRemaining int
	}{
		{
			name: "available with headroom",
			req:  dto.CheckAvailabilityRequest{FieldID: "field-id", Date: day, NumHunters: 3},
			setupMock: func() {
				mockFieldRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(field, nil)

				mockRepo.EXPECT().
					SumHuntersOn(gomock.Any(), "field-id", gomock.Any()).
					Return(4, nil)
			},
			wantAvailable: true,
			wantRemaining: 6,
		},
		{
			name: "insufficient capacity",
			req:  dto.CheckAvailabilityRequest{FieldID: "field-id", Date: day, NumHunters: 8},
			setupMock: func() {
				mockFieldRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(field, nil)

				mockRepo.EXPECT().
					SumHuntersOn(gomock.Any(), "field-id", gomock.Any()).
					Return(4, nil)
			},
			wantAvailable: false,
			wantRemaining: 6,
		},
		{
			name: "blocked date",
			req:  dto.CheckAvailabilityRequest{FieldID: "field-id", Date: day, NumHunters: 1},
			setupMock: func() {
				blocked := field
				blocked.BlockedDates = fieldModel.DayList{day}

				mockFieldRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(blocked, nil)
			},
			wantAvailable: false,
		},
		{
			name: "field not found",
			req:  dto.CheckAvailabilityRequest{FieldID: "missing", Date: day, NumHunters: 1},
			setupMock: func() {
				mockFieldRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(fieldModel.Field{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.CheckAvailability(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantAvailable, result.Available)
				assert.Equal(t, tt.wantRemaining, result.Remaining)
			}
		})
	}
}

func TestBookingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockFieldRepo := fieldMocks.NewMockField(ctrl)
	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockNotifier := notifierMocks.NewMockNotifier(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockFieldRepo, mockUserRepo, mockNotifier, cfg, mockCache, mockOtel)

	day := timezone.Format(timezone.Now(), constant.DayFormat)
	field := fieldModel.Field{
		ID:          "field-id",
		OutfitterID: "outfitter-id",
		Name:        "Highland Estate",
		Capacity:    10,
	}

	tests := []struct {
		name       string
		ctx        context.Context
		req        dto.CreateBookingRequest
		setupMock  func()
		wantErr    bool
		wantKind   failure.Kind
		wantStatus string
	}{
		{
			name: "manual approval field creates pending booking",
			ctx:  hunterContext("hunter-id"),
			req:  dto.CreateBookingRequest{FieldID: "field-id", Date: day, NumHunters: 2},
			setupMock: func() {
				mockFieldRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(field, nil)

				mockRepo.EXPECT().
					CreateAtomic(gomock.Any(), gomock.Any(), 10, false).
					DoAndReturn(func(_ context.Context, booking model.Booking, _ int, _ bool) error {
						assert.Equal(t, model.StatusPending, booking.Status)
						assert.Equal(t, "hunter-id", booking.HunterID)

						return nil
					})

				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{ID: "hunter-id"}, nil).
					AnyTimes()

				mockNotifier.EXPECT().
					BookingCreated(gomock.Any(), gomock.Any()).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantStatus: model.StatusPending,
		},
		{
			name: "auto approval field creates confirmed booking",
			ctx:  hunterContext("hunter-id"),
			req:  dto.CreateBookingRequest{FieldID: "field-id", Date: day, NumHunters: 2},
			setupMock: func() {
				autoApprove := field
				autoApprove.AutoApproveBookings = true

				mockFieldRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(autoApprove, nil)

				mockRepo.EXPECT().
					CreateAtomic(gomock.Any(), gomock.Any(), 10, false).
					Return(nil)

				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{ID: "hunter-id"}, nil).
					AnyTimes()

				mockNotifier.EXPECT().
					BookingCreated(gomock.Any(), gomock.Any()).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantStatus: model.StatusConfirmed,
		},
		{
			name: "blocked date rejected before touching the repository",
			ctx:  hunterContext("hunter-id"),
			req:  dto.CreateBookingRequest{FieldID: "field-id", Date: day, NumHunters: 2},
			setupMock: func() {
				blocked := field
				blocked.BlockedDates = fieldModel.DayList{day}

				mockFieldRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(blocked, nil)
			},
			wantErr:  true,
			wantKind: failure.KindDateBlocked,
		},
		{
			name: "double booking surfaces from the atomic create",
			ctx:  hunterContext("hunter-id"),
			req:  dto.CreateBookingRequest{FieldID: "field-id", Date: day, NumHunters: 2},
			setupMock: func() {
				mockFieldRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(field, nil)

				mockRepo.EXPECT().
					CreateAtomic(gomock.Any(), gomock.Any(), 10, false).
					Return(failure.DoubleBooking(day, "Highland Estate"))
			},
			wantErr:  true,
			wantKind: failure.KindDoubleBooking,
		},
		{
			name: "admin override passes through to the atomic create",
			ctx:  adminContext("admin-id"),
			req:  dto.CreateBookingRequest{FieldID: "field-id", Date: day, NumHunters: 2, AdminOverride: true},
			setupMock: func() {
				mockFieldRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(field, nil)

				mockRepo.EXPECT().
					CreateAtomic(gomock.Any(), gomock.Any(), 10, true).
					Return(nil)

				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{ID: "admin-id"}, nil).
					AnyTimes()

				mockNotifier.EXPECT().
					BookingCreated(gomock.Any(), gomock.Any()).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantStatus: model.StatusPending,
		},
		{
			name: "hunter cannot use admin override",
			ctx:  hunterContext("hunter-id"),
			req:  dto.CreateBookingRequest{FieldID: "field-id", Date: day, NumHunters: 2, AdminOverride: true},
			setupMock: func() {
				mockFieldRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(field, nil)

				mockRepo.EXPECT().
					CreateAtomic(gomock.Any(), gomock.Any(), 10, false).
					Return(nil)

				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{ID: "hunter-id"}, nil).
					AnyTimes()

				mockNotifier.EXPECT().
					BookingCreated(gomock.Any(), gomock.Any()).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantStatus: model.StatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Create(tt.ctx, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, failure.IsKind(err, tt.wantKind))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantStatus, result.Status)
				assert.Equal(t, day, result.Date)
			}
		})
	}
}

func TestBookingService_UpdateStatus(t *testing.T) {
	var (
		mockRepo      *bookingMocks.MockBooking
		mockFieldRepo *fieldMocks.MockField
		mockUserRepo  *userMocks.MockUser
		mockNotifier  *notifierMocks.MockNotifier
		mockCache     *cacheMocks.MockRedisCache
	)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	expectAsyncNotify := func() {
		mockFieldRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(fieldModel.Field{ID: "field-id", OutfitterID: "outfitter-id"}, nil).
			AnyTimes()

		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "user-id"}, nil).
			AnyTimes()

		mockNotifier.EXPECT().BookingApproved(gomock.Any(), gomock.Any()).AnyTimes()
		mockNotifier.EXPECT().BookingRejected(gomock.Any(), gomock.Any()).AnyTimes()
		mockNotifier.EXPECT().BookingCancelled(gomock.Any(), gomock.Any()).AnyTimes()

		mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	}

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.UpdateBookingStatusRequest
		setupMock func()
		wantErr   bool
		wantKind  failure.Kind
		wantCode  int
	}{
		{
			name: "admin approves a pending booking",
			ctx:  adminContext("admin-id"),
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusConfirmed},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "booking-id", FieldID: "field-id", HunterID: "hunter-id", Status: model.StatusPending}, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				expectAsyncNotify()
			},
		},
		{
			name: "outfitter approves a booking on their own field",
			ctx:  outfitterContext("outfitter-id"),
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusConfirmed},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "booking-id", FieldID: "field-id", HunterID: "hunter-id", Status: model.StatusPending}, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				expectAsyncNotify()
			},
		},
		{
			name: "hunter cannot approve a pending booking",
			ctx:  hunterContext("hunter-id"),
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusConfirmed},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "booking-id", FieldID: "field-id", HunterID: "someone-else", Status: model.StatusPending}, nil)

				mockFieldRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(fieldModel.Field{ID: "field-id", OutfitterID: "outfitter-id"}, nil)
			},
			wantErr:  true,
			wantCode: 403,
		},
		{
			name: "outfitter cannot decline a booking on another outfitter's field",
			ctx:  outfitterContext("someone-else"),
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusRejected},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "booking-id", FieldID: "field-id", HunterID: "hunter-id", Status: model.StatusPending}, nil)

				mockFieldRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(fieldModel.Field{ID: "field-id", OutfitterID: "outfitter-id"}, nil)
			},
			wantErr:  true,
			wantCode: 403,
		},
		{
			name: "hunter cancels their own confirmed booking",
			ctx:  hunterContext("hunter-id"),
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusCancelled},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "booking-id", FieldID: "field-id", HunterID: "hunter-id", Status: model.StatusConfirmed}, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				expectAsyncNotify()
			},
		},
		{
			name: "hunter cannot cancel another hunter's booking",
			ctx:  hunterContext("someone-else"),
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusCancelled},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "booking-id", FieldID: "field-id", HunterID: "hunter-id", Status: model.StatusConfirmed}, nil)
			},
			wantErr:  true,
			wantCode: 403,
		},
		{
			name: "cancelled is terminal",
			ctx:  hunterContext("hunter-id"),
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusConfirmed},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "booking-id", Status: model.StatusCancelled}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindInvalidSequence,
		},
		{
			name: "force only works for admins",
			ctx:  hunterContext("hunter-id"),
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusConfirmed, Force: true},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "booking-id", Status: model.StatusCancelled}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindInvalidSequence,
		},
		{
			name: "admin force bypasses the lifecycle",
			ctx:  adminContext("admin-id"),
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusConfirmed, Force: true},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "booking-id", FieldID: "field-id", Status: model.StatusCancelled}, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				expectAsyncNotify()
			},
		},
		{
			name: "booking not found",
			ctx:  adminContext("admin-id"),
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusConfirmed},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo = bookingMocks.NewMockBooking(ctrl)
			mockFieldRepo = fieldMocks.NewMockField(ctrl)
			mockUserRepo = userMocks.NewMockUser(ctrl)
			mockNotifier = notifierMocks.NewMockNotifier(ctrl)
			mockCache = cacheMocks.NewMockRedisCache(ctrl)

			svc := service.New(mockRepo, mockFieldRepo, mockUserRepo, mockNotifier, cfg, mockCache, mocks.NewOtel())

			tt.setupMock()

			err := svc.UpdateStatus(tt.ctx, tt.req, "booking-id")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantKind != "" {
					assert.True(t, failure.IsKind(err, tt.wantKind))
				}

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_TodayForHunter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockFieldRepo := fieldMocks.NewMockField(ctrl)
	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockNotifier := notifierMocks.NewMockNotifier(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockFieldRepo, mockUserRepo, mockNotifier, cfg, mockCache, mockOtel)

	bookings := []model.Booking{
		{ID: "booking-id", HunterID: "hunter-id", BookingDate: timezone.Now(), Status: model.StatusConfirmed},
	}

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(bookings, nil)

	result, err := svc.TodayForHunter(context.Background(), "hunter-id")

	assert.NoError(t, err)
	assert.Len(t, result.Bookings, 1)
	assert.Equal(t, 1, result.TotalData)
}

func TestBookingService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockFieldRepo := fieldMocks.NewMockField(ctrl)
	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockNotifier := notifierMocks.NewMockNotifier(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockFieldRepo, mockUserRepo, mockNotifier, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "cache miss falls through to the repository",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(cache.Nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "booking-id", Status: model.StatusPending, BookingDate: timezone.Now()}, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "booking not found",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(cache.Nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr: true,
		},
		{
			name: "repository error",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(cache.Nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Get(context.Background(), "booking-id")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "booking-id", result.ID)
			}
		})
	}
}
