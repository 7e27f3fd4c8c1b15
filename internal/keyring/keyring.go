// Package keyring stores the member's booking-server password in the
// OS credential store, keyed by username.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/squashclub/courtbook/internal/constants"
)

var (
	// ErrNotFound is returned when no password is stored for the user
	ErrNotFound = errors.New("password not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetPassword retrieves the stored password for a username.
// Returns ErrNotFound if nothing is stored.
func GetPassword(username string) (string, error) {
	password, err := keyring.Get(constants.AppName, username)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return password, nil
}

// SetPassword stores the password for a username.
func SetPassword(username, password string) error {
	if username == "" {
		return errors.New("username cannot be empty")
	}
	if password == "" {
		return errors.New("password cannot be empty")
	}
	if err := keyring.Set(constants.AppName, username, password); err != nil {
		return fmt.Errorf("failed to store password in keyring: %w", err)
	}
	return nil
}

// DeletePassword removes the stored password for a username.
func DeletePassword(username string) error {
	err := keyring.Delete(constants.AppName, username)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete password from keyring: %w", err)
	}
	return nil
}

// IsAvailable checks if the OS keyring is usable on this system. A
// missing test entry still proves the keyring answered.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || err == keyring.ErrNotFound
}
