package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/stampdeck/stampdeck-backend/pkg/util"
)

// ErrorInfo carries a mapped error code and message.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts an error into a code and a message the frontend can
// show. Sensitive details stay out of the message; context names the entity
// the caller was working with ("business", "campaign", ...).
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Something went wrong",
		}
	}

	// 1. Token errors from the JWT layer
	if errors.Is(err, util.ErrExpiredToken) {
		return ErrorInfo{Code: AuthTokenExpired, Message: "Your session has expired. Please sign in again"}
	}
	if errors.Is(err, util.ErrInvalidToken) {
		return ErrorInfo{Code: AuthTokenInvalid, Message: "Invalid authentication token"}
	}

	// 2. Connectivity failures (redis, postgres, S3)
	errStrLower := strings.ToLower(err.Error())
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "A backing service is unreachable. Please try again later",
		}
	}

	// 3. Everything else is a storage or server fault
	return ErrorInfo{
		Code:    InternalStorageError,
		Message: getDefaultErrorMessage(context),
	}
}

// StatusForCode maps an error code to its HTTP status. Unknown codes map to
// 500 so a missed case never turns a fault into a success.
func StatusForCode(code string) int {
	switch code {
	case AuthUnauthorized, AuthInvalidCredentials, AuthTokenExpired, AuthTokenInvalid:
		return http.StatusUnauthorized
	case AuthzForbidden, AuthzAdminOnly, AuthzOwnerOnly, AuthzRoleNotFound:
		return http.StatusForbidden
	case ResourceNotFound, BusinessNotFound, CampaignNotFound, CardNotFound,
		RewardNotFound, CouponNotFound, QRCodeNotFound, ReferralNotFound:
		return http.StatusNotFound
	case AuthEmailAlreadyExists, ResourceAlreadyExists, ResourceConflict:
		return http.StatusConflict
	case ValidationInvalidInput, ValidationInvalidID, ValidationInvalidFormat,
		ValidationRequired, CampaignInactive, CardNotEnoughStamps,
		CardInvalidStampTarget, CouponExpired, CouponInactive,
		QRCodeInvalidPayload, BrandingUnknownTemplate, BrandingUnknownPalette,
		UploadInvalidFileType:
		return http.StatusBadRequest
	case UploadFileTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// ParseAndRespond maps the error and writes the standard payload.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}

func getDefaultErrorMessage(context string) string {
	switch context {
	case "auth":
		return "Could not complete the request. Please try again"
	case "":
		return "Something went wrong. Please try again later"
	default:
		return "Could not load " + context + " data. Please try again later"
	}
}
