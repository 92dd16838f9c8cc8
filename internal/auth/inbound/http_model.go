package inbound

// RegisterRequest is the payload for POST /register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterUser is the public projection of a created account.
type RegisterUser struct {
	ID    int64  `json:"id,string"`
	Email string `json:"email"`
}

// RegisterResponse is the payload returned by POST /register.
type RegisterResponse struct {
	Message string       `json:"message"`
	User    RegisterUser `json:"user"`
}

// LoginRequest is the payload for POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the payload returned by POST /login. Exactly one of
// TempToken and AccessToken is set, depending on whether the account has a
// second factor enabled.
type LoginResponse struct {
	TempToken    string `json:"tempToken,omitempty"`
	AccessToken  string `json:"accessToken,omitempty"`
	TwoFAEnabled bool   `json:"twofa_enabled"`
	Message      string `json:"message"`
}

// SetupTwoFactorRequest is the payload for POST /2fa/setup.
type SetupTwoFactorRequest struct {
	TempToken string `json:"tempToken"`
}

// SetupTwoFactorResponse is the payload returned by POST /2fa/setup. QR is a
// data URI holding a PNG of the enrollment QR code.
type SetupTwoFactorResponse struct {
	Message    string `json:"message"`
	QR         string `json:"qr"`
	OtpauthURL string `json:"otpauth_url"`
}

// VerifyTwoFactorRequest is the payload for POST /2fa/verify.
type VerifyTwoFactorRequest struct {
	TempToken string `json:"tempToken"`
	Token     string `json:"token"`
}

// VerifyTwoFactorResponse is the payload returned by POST /2fa/verify.
type VerifyTwoFactorResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"accessToken"`
}
