package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"reppup/internal/errors"
	"reppup/internal/service"
)

// UploadHandler handles profile picture uploads. The same handler serves
// every registered upload path.
type UploadHandler struct {
	svc service.UserService
}

// NewUploadHandler creates an upload handler.
func NewUploadHandler(svc service.UserService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// Upload godoc
// @Summary Upload a profile picture to the image host
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Account ID"
// @Param file formData file true "Image file"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} errors.MessageResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security SessionToken
// @Router /users/upload/{id} [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, errors.MessageResponse{Msg: "User not found"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.NewErrorResponse("No file uploaded"))
	}

	path, err := stageUpload(fileHeader)
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errors.ServerError())
	}
	// The staged file is removed whether the remote upload succeeded or
	// not; removal errors are logged, never surfaced.
	defer func() {
		if err := os.Remove(path); err != nil {
			c.Logger().Errorf("remove temporary file %s: %v", path, err)
		}
	}()

	user, err := h.svc.UploadProfileImage(c.Request().Context(), id, path)
	if err != nil {
		if err == errors.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, errors.MessageResponse{Msg: "User not found"})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errors.ServerError())
	}

	return c.JSON(http.StatusOK, user)
}

// stageUpload copies the multipart part to a local temporary file and
// returns its path.
func stageUpload(fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(fileHeader.Filename))
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}
