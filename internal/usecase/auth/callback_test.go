package auth

import "testing"

func TestMapCallbackError(t *testing.T) {
	cases := []struct {
		name    string
		code    string
		message string
		want    CallbackNotice
	}{
		{
			name: "expired link",
			code: CallbackOTPExpired,
			want: CallbackNotice{
				Title:       "Link Expired",
				Description: "The email verification link has expired. Please request a new one.",
			},
		},
		{
			name: "denied",
			code: CallbackAccessDenied,
			want: CallbackNotice{
				Title:       "Access Denied",
				Description: "The authentication link is invalid or has already been used.",
			},
		},
		{
			name:    "session error keeps message",
			code:    CallbackSessionError,
			message: "session store unavailable",
			want: CallbackNotice{
				Title:       "Session Error",
				Description: "session store unavailable",
			},
		},
		{
			name:    "unknown code keeps message",
			code:    "something_else",
			message: "upstream said no",
			want: CallbackNotice{
				Title:       "Authentication Error",
				Description: "upstream said no",
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := MapCallbackError(c.code, c.message)
			if got != c.want {
				t.Fatalf("expected %+v, got %+v", c.want, got)
			}
		})
	}
}
