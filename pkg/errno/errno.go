package errno

// Errno defines the error code logic
type Errno struct {
	Code    int
	Message string
}

func (e Errno) Error() string {
	return e.Message
}

// Decode tries to convert an error to Errno
func Decode(err error) (int, string) {
	if err == nil {
		return OK.Code, OK.Message
	}

	switch typed := err.(type) {
	case *Errno:
		return typed.Code, typed.Message
	case Errno:
		return typed.Code, typed.Message
	default:
		return InternalServerError.Code, err.Error()
	}
}

// Common Errors
var (
	OK                  = Errno{Code: 0, Message: "Success"}
	InternalServerError = Errno{Code: 10001, Message: "Internal server error"}
	ErrBind             = Errno{Code: 10002, Message: "Error occurred while binding the request body to the struct"}
	ErrTokenInvalid     = Errno{Code: 10003, Message: "Session invalid or expired"}
	ErrDatabase         = Errno{Code: 10004, Message: "Database error"}
	ErrValidation       = Errno{Code: 10005, Message: "Missing or invalid required fields"}
)

// Auth Errors (20100+)
var (
	ErrAdminNotFound     = Errno{Code: 20101, Message: "Administrator not found"}
	ErrPasswordIncorrect = Errno{Code: 20102, Message: "Password incorrect"}
)

// Earnings / Upload Errors (20200+)
var (
	ErrFileType     = Errno{Code: 20201, Message: "Only .csv files are accepted"}
	ErrFileTooLarge = Errno{Code: 20202, Message: "Uploaded file exceeds the size limit"}
	ErrEmptyFile    = Errno{Code: 20203, Message: "Uploaded file contains no data rows"}
)

// Payment / Royalty Errors (20300+)
var (
	ErrUserNotFound           = Errno{Code: 20301, Message: "User not found"}
	ErrReleaseNotFound        = Errno{Code: 20302, Message: "Release not found"}
	ErrPaymentRequestNotFound = Errno{Code: 20303, Message: "Payment request not found"}
	ErrRoyaltyEntryNotFound   = Errno{Code: 20304, Message: "Royalty ledger entry not found"}
	ErrInsufficientBalance    = Errno{Code: 20305, Message: "Wallet balance is insufficient for this payment"}
	ErrInvalidStatus          = Errno{Code: 20306, Message: "Status must be one of Pending, Approved, Rejected"}
)
