// Package clock abstracts the current time behind a small interface so that
// token expiry and TOTP windows can be tested with a frozen clock.
package clock
