package errors

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// 认证相关错误。
var (
	Unauthorized           = Definition{Code: "UNAUTHORIZED", Message: "Unauthorized"}
	InvalidCredentials     = Definition{Code: "INVALID_CREDENTIALS", Message: "Invalid phone or password"}
	PhoneAlreadyRegistered = Definition{Code: "PHONE_ALREADY_REGISTERED", Message: "Phone already registered"}
	InvalidUserID          = Definition{Code: "INVALID_USER_ID", Message: "Invalid user ID format"}
	UserNotFound           = Definition{Code: "USER_NOT_FOUND", Message: "User not found"}
	RoleForbidden          = Definition{Code: "ROLE_FORBIDDEN", Message: "Operation not allowed for this role"}
)

// 工人档案模块错误。
var (
	WorkerNotFound   = Definition{Code: "WORKER_NOT_FOUND", Message: "Worker not found"}
	WorkerInactive   = Definition{Code: "WORKER_INACTIVE", Message: "Worker is deactivated"}
	InvalidDailyRate = Definition{Code: "INVALID_DAILY_RATE", Message: "Daily rate must not be negative"}
	InvalidCategory  = Definition{Code: "INVALID_CATEGORY", Message: "Unknown worker category"}
)

// 考勤模块错误。
var (
	InvalidStatus    = Definition{Code: "INVALID_STATUS", Message: "Attendance status outside the allowed set"}
	InvalidDate      = Definition{Code: "INVALID_DATE", Message: "Date must be formatted as YYYY-MM-DD"}
	DuplicateKeyRace = Definition{Code: "DUPLICATE_KEY_RACE", Message: "Concurrent attendance write detected, retry"}
)

// 每日二维码模块错误。
var (
	CodeNotFound = Definition{Code: "CODE_NOT_FOUND", Message: "No daily code has been generated"}
	CodeExpired  = Definition{Code: "CODE_EXPIRED", Message: "Daily code is expired"}
	CodeInvalid  = Definition{Code: "CODE_INVALID", Message: "Scanned code does not match the current daily code"}
)

// 付款模块错误。
var (
	InvalidAmount      = Definition{Code: "INVALID_AMOUNT", Message: "Payment amount must be positive"}
	InvalidPaymentType = Definition{Code: "INVALID_PAYMENT_TYPE", Message: "Payment type outside the allowed set"}
)

// 限流错误。
var (
	RateLimited = Definition{Code: "RATE_LIMITED", Message: "Too many requests, slow down"}
)

// Lookup 提供错误码查询能力。
var Lookup = map[string]Definition{
	Unauthorized.Code:           Unauthorized,
	InvalidCredentials.Code:     InvalidCredentials,
	PhoneAlreadyRegistered.Code: PhoneAlreadyRegistered,
	InvalidUserID.Code:          InvalidUserID,
	UserNotFound.Code:           UserNotFound,
	RoleForbidden.Code:          RoleForbidden,
	WorkerNotFound.Code:         WorkerNotFound,
	WorkerInactive.Code:         WorkerInactive,
	InvalidDailyRate.Code:       InvalidDailyRate,
	InvalidCategory.Code:        InvalidCategory,
	InvalidStatus.Code:          InvalidStatus,
	InvalidDate.Code:            InvalidDate,
	DuplicateKeyRace.Code:       DuplicateKeyRace,
	CodeNotFound.Code:           CodeNotFound,
	CodeExpired.Code:            CodeExpired,
	CodeInvalid.Code:            CodeInvalid,
	InvalidAmount.Code:          InvalidAmount,
	InvalidPaymentType.Code:     InvalidPaymentType,
	RateLimited.Code:            RateLimited,
}

// Get 根据错误码返回 Definition，若不存在则返回空 Definition。
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}
