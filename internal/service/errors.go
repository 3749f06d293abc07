package service

import "darb_pms/internal/apperror"

var (
	ErrCredentialsRequired = apperror.Validation("username and password are required")
	ErrUsernameLength      = apperror.Validation("username must be between 3 and 50 characters")
	ErrPasswordTooShort    = apperror.Validation("password must be at least 6 characters")
	ErrUsernameTaken       = apperror.Conflict("username already exists")
	ErrInvalidCredentials  = apperror.Auth("invalid username or password")
	ErrWrongPassword       = apperror.Auth("current password is incorrect")
	ErrUserNotFound        = apperror.NotFound("user not found")
	ErrInvalidRole         = apperror.Validation("role must be one of admin, user, ceo")

	ErrProjectFieldsRequired = apperror.Validation("departmentType, projectName and projectCode are required")
	ErrProjectCodeTaken      = apperror.Conflict("project code already exists")
	ErrProjectNotFound       = apperror.NotFound("project not found")
	ErrReviewStatusRequired  = apperror.Validation("review status is required")
	ErrInvalidReviewStatus   = apperror.Validation("review status must be one of Pending Review, Validated, Approved, Rejected")
	ErrNoFieldsToUpdate      = apperror.Validation("no fields to update")

	ErrInvalidAttachmentKind = apperror.Validation("attachment kind must be one of design, documents, autocad")
	ErrFileSizeExceeded      = apperror.Validation("file size exceeds the 20MB limit")
	ErrInvalidFileFormat     = apperror.Validation("invalid file format")
	ErrAttachmentNotFound    = apperror.NotFound("attachment not found")

	ErrStationFieldsRequired = apperror.Validation("station code and station name are required")
	ErrStationCodeTaken      = apperror.Conflict("station code already exists")
	ErrStationNotFound       = apperror.NotFound("station not found")
	ErrEmptyBulkImport       = apperror.Validation("request body must be a non-empty array of stations")

	ErrTankFieldsRequired = apperror.Validation("tank code and station code are required")
	ErrTankCodeTaken      = apperror.Conflict("tank code already exists")
	ErrTankNotFound       = apperror.NotFound("tank not found")
)
