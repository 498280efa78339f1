package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// The frontend maps these codes to localized messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"       // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed or forged token
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // duplicate email

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"     // no access
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"    // super admin only
	AuthzOwnerOnly    = "AUTHZ_OWNER_ONLY"    // resource owner only
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND" // role missing from token

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Business (BUSINESS_) ====================
	BusinessNotFound = "BUSINESS_NOT_FOUND"

	// ==================== Campaigns (CAMPAIGN_) ====================
	CampaignNotFound = "CAMPAIGN_NOT_FOUND"
	CampaignInactive = "CAMPAIGN_INACTIVE"

	// ==================== Loyalty cards (CARD_) ====================
	CardNotFound           = "CARD_NOT_FOUND"
	CardNotEnoughStamps    = "CARD_NOT_ENOUGH_STAMPS" // redeem below threshold
	CardInvalidStampTarget = "CARD_INVALID_STAMP_TARGET"

	// ==================== Rewards (REWARD_) ====================
	RewardNotFound = "REWARD_NOT_FOUND"

	// ==================== Coupons (COUPON_) ====================
	CouponNotFound = "COUPON_NOT_FOUND"
	CouponExpired  = "COUPON_EXPIRED"
	CouponInactive = "COUPON_INACTIVE"

	// ==================== QR codes (QRCODE_) ====================
	QRCodeNotFound       = "QRCODE_NOT_FOUND"
	QRCodeInvalidPayload = "QRCODE_INVALID_PAYLOAD" // scan payload not a stamp code

	// ==================== Branding (BRANDING_) ====================
	BrandingUnknownTemplate = "BRANDING_UNKNOWN_TEMPLATE"
	BrandingUnknownPalette  = "BRANDING_UNKNOWN_PALETTE"

	// ==================== Referrals (REFERRAL_) ====================
	ReferralNotFound = "REFERRAL_NOT_FOUND"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalStorageError  = "INTERNAL_STORAGE_ERROR" // key-value store failure
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"
)
