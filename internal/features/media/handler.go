package media

import (
	"github.com/gin-gonic/gin"

	"github.com/arjunms/dailydo/internal/features/auth"
	"github.com/arjunms/dailydo/internal/pkg/cloudinary"
	"github.com/arjunms/dailydo/internal/pkg/response"
)

type Handler struct {
	uploads *cloudinary.Service
	users   *auth.Repository
}

func NewHandler(uploads *cloudinary.Service, users *auth.Repository) *Handler {
	return &Handler{
		uploads: uploads,
		users:   users,
	}
}

// AvatarResponse is returned after a successful avatar upload
type AvatarResponse struct {
	URL string `json:"url"`
}

// UploadAvatar godoc
// @Summary Upload profile picture
// @Description Upload an avatar image and set it as the user's profile picture
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "Avatar image (max 5MB)"
// @Success 200 {object} response.SuccessResponse{data=AvatarResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /media/avatar [post]
func (h *Handler) UploadAvatar(c *gin.Context) {
	if h.uploads == nil {
		response.ServiceUnavailable(c, "Media uploads are not configured", "UPLOADS_DISABLED")
		return
	}

	userID := c.GetString("userID")

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		response.BadRequest(c, "An avatar file is required", "FILE_REQUIRED")
		return
	}

	if err := cloudinary.ValidateImageFile(fileHeader); err != nil {
		response.BadRequest(c, err.Error(), "INVALID_FILE")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Failed to read uploaded file", "FILE_READ_FAILED")
		return
	}
	defer file.Close()

	result, err := h.uploads.UploadImage(c.Request.Context(), file, fileHeader.Filename)
	if err != nil {
		response.InternalServerError(c, "Failed to upload image", "UPLOAD_FAILED")
		return
	}

	if err := h.users.Update(c.Request.Context(), userID, map[string]interface{}{
		"profilePictureUrl": result.URL,
	}); err != nil {
		response.InternalServerError(c, "Failed to save profile picture", "DATABASE_ERROR")
		return
	}

	response.Success(c, AvatarResponse{URL: result.URL})
}
