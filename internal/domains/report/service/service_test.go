package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"fieldbook/config"
	"fieldbook/infras/otel/mocks"
	reportMocks "fieldbook/internal/domains/report/mocks"
	"fieldbook/internal/domains/report/model"
	"fieldbook/internal/domains/report/model/dto"
	"fieldbook/internal/domains/report/service"
	sessionMocks "fieldbook/internal/domains/session/mocks"
	sessionModel "fieldbook/internal/domains/session/model"
	cacheMocks "fieldbook/shared/cache/mocks"
	"fieldbook/shared/constant"
	gDto "fieldbook/shared/dto"
	"fieldbook/shared/failure"
)

func hunterContext(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleHunter)
}

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}

func TestReportService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reportMocks.NewMockReport(ctrl)
	mockSessionRepo := sessionMocks.NewMockSession(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockSessionRepo, cfg, mockCache, mockOtel)

	activeSession := sessionModel.HuntSession{
		ID:       "session-id",
		HunterID: "hunter-id",
		FieldID:  "field-id",
		Status:   sessionModel.StatusActive,
	}

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.CreateReportRequest
		setupMock func()
		wantErr   bool
		wantKind  failure.Kind
	}{
		{
			name: "files the report and depletes quota atomically",
			ctx:  hunterContext("hunter-id"),
			req: dto.CreateReportRequest{
				SessionID:        "session-id",
				AnimalsHarvested: 2,
				SpeciesHarvested: []dto.HarvestCountRequest{{Species: "red deer", Quantity: 2}},
			},
			setupMock: func() {
				mockSessionRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeSession, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					CreateApplyingQuota(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, report model.HuntReport) error {
						assert.Equal(t, "hunter-id", report.HunterID)
						assert.Equal(t, "field-id", report.FieldID)
						assert.True(t, report.Success)

						return nil
					})

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "review can be filed with the report",
			ctx:  hunterContext("hunter-id"),
			req: dto.CreateReportRequest{
				SessionID:        "session-id",
				AnimalsHarvested: 1,
				ReviewRating:     intPtr(4),
				ReviewText:       strPtr("good ground, well managed"),
			},
			setupMock: func() {
				mockSessionRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeSession, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					CreateApplyingQuota(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, report model.HuntReport) error {
						if assert.NotNil(t, report.ReviewRating) {
							assert.Equal(t, 4, *report.ReviewRating)
						}

						if assert.NotNil(t, report.ReviewText) {
							assert.Equal(t, "good ground, well managed", *report.ReviewText)
						}

						return nil
					})

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "empty handed report is legitimate",
			ctx:  hunterContext("hunter-id"),
			req:  dto.CreateReportRequest{SessionID: "session-id", AnimalsHarvested: 0},
			setupMock: func() {
				mockSessionRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeSession, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					CreateApplyingQuota(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, report model.HuntReport) error {
						assert.False(t, report.Success)

						return nil
					})

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "session not found",
			ctx:  hunterContext("hunter-id"),
			req:  dto.CreateReportRequest{SessionID: "session-id"},
			setupMock: func() {
				mockSessionRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(sessionModel.HuntSession{}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindNotFound,
		},
		{
			name: "session belongs to another hunter",
			ctx:  hunterContext("someone-else"),
			req:  dto.CreateReportRequest{SessionID: "session-id"},
			setupMock: func() {
				mockSessionRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeSession, nil)
			},
			wantErr: true,
		},
		{
			name: "session not active",
			ctx:  hunterContext("hunter-id"),
			req:  dto.CreateReportRequest{SessionID: "session-id"},
			setupMock: func() {
				notStarted := activeSession
				notStarted.Status = sessionModel.StatusNotStarted

				mockSessionRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(notStarted, nil)
			},
			wantErr:  true,
			wantKind: failure.KindInvalidSequence,
		},
		{
			name: "one report per session",
			ctx:  hunterContext("hunter-id"),
			req:  dto.CreateReportRequest{SessionID: "session-id"},
			setupMock: func() {
				mockSessionRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeSession, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantKind: failure.KindInvalidSequence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Create(tt.ctx, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantKind != "" {
					assert.True(t, failure.IsKind(err, tt.wantKind))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "session-id", result.SessionID)
			}
		})
	}
}

func TestReportService_UpdateReview(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reportMocks.NewMockReport(ctrl)
	mockSessionRepo := sessionMocks.NewMockSession(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockSessionRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.UpdateReviewRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "hunter reviews own report",
			ctx:  hunterContext("hunter-id"),
			req:  dto.UpdateReviewRequest{ReviewRating: intPtr(5), ReviewText: strPtr("great ground")},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.HuntReport{ID: "report-id", HunterID: "hunter-id"}, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "text only edit leaves the rating untouched",
			ctx:  hunterContext("hunter-id"),
			req:  dto.UpdateReviewRequest{ReviewText: strPtr("revisited: even better in autumn")},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.HuntReport{ID: "report-id", HunterID: "hunter-id"}, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, updated map[string]any, _ gDto.FilterGroup) error {
						assert.NotContains(t, updated, model.FieldReviewRating)
						assert.Contains(t, updated, model.FieldReviewText)

						return nil
					})

				mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "empty review update is rejected",
			ctx:  hunterContext("hunter-id"),
			req:  dto.UpdateReviewRequest{},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.HuntReport{ID: "report-id", HunterID: "hunter-id"}, nil)
			},
			wantErr: true,
		},
		{
			name: "review on someone else's report is forbidden",
			ctx:  hunterContext("someone-else"),
			req:  dto.UpdateReviewRequest{ReviewRating: intPtr(5)},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.HuntReport{ID: "report-id", HunterID: "hunter-id"}, nil)
			},
			wantErr: true,
		},
		{
			name: "report not found",
			ctx:  hunterContext("hunter-id"),
			req:  dto.UpdateReviewRequest{ReviewRating: intPtr(5)},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.HuntReport{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.UpdateReview(tt.ctx, tt.req, "report-id")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
