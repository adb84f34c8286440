package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apierrors "reppup/internal/errors"
	"reppup/internal/model"
)

func multipartBody(t *testing.T, fieldName, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, fileName)
	assert.NoError(t, err)
	_, err = part.Write([]byte(content))
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadHandler_NoFile(t *testing.T) {
	mockSvc := new(MockUserService)
	h := NewUploadHandler(mockSvc)

	e := newTestEcho()
	body, contentType := multipartBody(t, "somethingelse", "pic.png", "not the right field")
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/users/upload/:id")
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	assert.NoError(t, h.Upload(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"errors":[{"msg":"No file uploaded"}]}`, rec.Body.String())

	// No account field changes on the missing-file path.
	mockSvc.AssertNotCalled(t, "UploadProfileImage", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadHandler_Upload(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name         string
		setupMock    func(*MockUserService)
		expectedCode int
		expectedBody func(*testing.T, string)
	}{
		{
			name: "successful upload",
			setupMock: func(m *MockUserService) {
				m.On("UploadProfileImage", mock.Anything, userID, mock.AnythingOfType("string")).
					Return(&model.User{ID: userID, ProfilePicture: "https://cdn.example.com/img/abc123"}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"profilePicture":"https://cdn.example.com/img/abc123"`)
			},
		},
		{
			name: "account missing after upload",
			setupMock: func(m *MockUserService) {
				m.On("UploadProfileImage", mock.Anything, userID, mock.AnythingOfType("string")).
					Return(nil, apierrors.ErrUserNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: func(t *testing.T, body string) {
				assert.JSONEq(t, `{"msg":"User not found"}`, body)
			},
		},
		{
			name: "image host failure collapses to generic error",
			setupMock: func(m *MockUserService) {
				m.On("UploadProfileImage", mock.Anything, userID, mock.AnythingOfType("string")).
					Return(nil, assert.AnError)
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: func(t *testing.T, body string) {
				assert.JSONEq(t, `{"errors":[{"msg":"Server Error"}]}`, body)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockUserService)
			tt.setupMock(mockSvc)
			h := NewUploadHandler(mockSvc)

			e := newTestEcho()
			body, contentType := multipartBody(t, "file", "pic.png", "fake image bytes")
			req := httptest.NewRequest(http.MethodPost, "/", body)
			req.Header.Set(echo.HeaderContentType, contentType)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetPath("/api/users/upload/:id")
			c.SetParamNames("id")
			c.SetParamValues(userID.String())

			assert.NoError(t, h.Upload(c))
			assert.Equal(t, tt.expectedCode, rec.Code)
			tt.expectedBody(t, rec.Body.String())

			mockSvc.AssertExpectations(t)
		})
	}
}
