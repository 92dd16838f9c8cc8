package inbound

import (
	"github.com/kodefy/authstep/internal/auth/usecase"
	"github.com/kodefy/authstep/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the two-stage login workflow.
type HTTPEndpoint struct {
	uc uc
}

// Register creates a new account.
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{
		Message: "user registered successfully",
		User:    RegisterUser{ID: resp.UserID, Email: resp.Email},
	}, nil
}

// Login verifies credentials and returns either a pending token for the TOTP
// step or a final access token.
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	msg := "login successful"
	if resp.TOTPEnabled {
		msg = "two-factor code required"
	}

	return LoginResponse{
		TempToken:    resp.TempToken,
		AccessToken:  resp.AccessToken,
		TwoFAEnabled: resp.TOTPEnabled,
		Message:      msg,
	}, nil
}

// SetupTwoFactor provisions a TOTP secret and returns the enrollment payload.
func (h *HTTPEndpoint) SetupTwoFactor(r *router.Request) (any, error) {
	var req SetupTwoFactorRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.SetupTwoFactor(r.Context(), usecase.SetupTwoFactorInput{
		TempToken: req.TempToken,
	})
	if err != nil {
		return nil, err
	}

	return SetupTwoFactorResponse{
		Message:    "two-factor authentication enabled",
		QR:         resp.QRDataURI,
		OtpauthURL: resp.OtpauthURL,
	}, nil
}

// VerifyTwoFactor checks the TOTP code and completes the login.
func (h *HTTPEndpoint) VerifyTwoFactor(r *router.Request) (any, error) {
	var req VerifyTwoFactorRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.VerifyTwoFactor(r.Context(), usecase.VerifyTwoFactorInput{
		TempToken: req.TempToken,
		Code:      req.Token,
	})
	if err != nil {
		return nil, err
	}

	return VerifyTwoFactorResponse{
		Message:     "two-factor verification successful",
		AccessToken: resp.AccessToken,
	}, nil
}
