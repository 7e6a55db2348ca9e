// Package auth provides the host-layer authorization check injected
// into the invoice pipeline. The core pipeline only sees capabilities;
// the passwords live out here with the host.
package auth

import "errors"

var errPasswordMismatch = errors.New("password mismatch")

// PasswordAuthorizer gates capabilities on passwords supplied by the
// operator. An empty configured password leaves that capability open,
// which suits unattended or development use.
type PasswordAuthorizer struct {
	// PrintPassword and AdminPassword are the configured secrets.
	PrintPassword string
	AdminPassword string

	// Supplied is what the operator entered for this request.
	Supplied string
}

// CanPrint permits invoice creation.
func (a *PasswordAuthorizer) CanPrint() error {
	if a.PrintPassword != "" && a.Supplied != a.PrintPassword {
		return errPasswordMismatch
	}
	return nil
}

// CanClearAll permits the bulk clear of all records.
func (a *PasswordAuthorizer) CanClearAll() error {
	if a.AdminPassword != "" && a.Supplied != a.AdminPassword {
		return errPasswordMismatch
	}
	return nil
}
