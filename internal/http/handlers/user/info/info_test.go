package info

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/profile-settings/internal/http/middlewarectx"
	"github.com/magabrotheeeer/profile-settings/internal/http/response"
	"github.com/magabrotheeeer/profile-settings/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) GetInfo(ctx context.Context, userUID string) (models.UserInfo, error) {
	args := m.Called(ctx, userUID)
	return args.Get(0).(models.UserInfo), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const uid = "8c5f2f9e-3b1d-4a39-9f55-000000000001"

func TestInfoHandler_ServeHTTP(t *testing.T) {
	info := models.UserInfo{
		ID:       uid,
		Username: "alice",
		Email:    "alice@example.com",
		NoticeSettings: models.NoticeSettings{
			EnableTgBot: true,
			TgID:        "42",
		},
	}

	tests := []struct {
		name           string
		withUID        bool
		setupMock      func(m *ServiceMock)
		wantStatusCode int
		wantCode       int
	}{
		{
			name:    "success",
			withUID: true,
			setupMock: func(m *ServiceMock) {
				m.On("GetInfo", mock.Anything, uid).Return(info, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantCode:       response.CodeOK,
		},
		{
			name:           "no uid in context",
			setupMock:      func(_ *ServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantCode:       response.CodeUnauthorized,
		},
		{
			name:    "user not found",
			withUID: true,
			setupMock: func(m *ServiceMock) {
				m.On("GetInfo", mock.Anything, uid).Return(models.UserInfo{}, models.ErrUserNotFound).Once()
			},
			wantStatusCode: http.StatusUnauthorized,
			wantCode:       response.CodeUnauthorized,
		},
		{
			name:    "service error",
			withUID: true,
			setupMock: func(m *ServiceMock) {
				m.On("GetInfo", mock.Anything, uid).Return(models.UserInfo{}, errors.New("db down")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantCode:       response.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodGet, "/user/info", nil)
			if tt.withUID {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, uid))
			}
			rec := httptest.NewRecorder()
			New(newNoopLogger(), svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got struct {
				Code int             `json:"code"`
				Data models.UserInfo `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.wantCode, got.Code)
			if tt.wantCode == response.CodeOK {
				assert.Equal(t, info, got.Data)
			}
			svc.AssertExpectations(t)
		})
	}
}
