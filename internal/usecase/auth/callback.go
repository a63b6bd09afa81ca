package auth

// CallbackNotice is the user-facing rendering of an auth redirect error.
type CallbackNotice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

const (
	CallbackOTPExpired   = "otp_expired"
	CallbackAccessDenied = "access_denied"
	CallbackSessionError = "session_error"
)

// MapCallbackError translates a redirect error code into distinct copy.
// Unrecognized codes keep the provider's message verbatim under a generic
// title.
func MapCallbackError(code, message string) CallbackNotice {
	switch code {
	case CallbackOTPExpired:
		return CallbackNotice{
			Title:       "Link Expired",
			Description: "The email verification link has expired. Please request a new one.",
		}
	case CallbackAccessDenied:
		return CallbackNotice{
			Title:       "Access Denied",
			Description: "The authentication link is invalid or has already been used.",
		}
	case CallbackSessionError:
		return CallbackNotice{
			Title:       "Session Error",
			Description: message,
		}
	default:
		return CallbackNotice{
			Title:       "Authentication Error",
			Description: message,
		}
	}
}
