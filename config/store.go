package config

import (
	"os"
	"strings"
	"time"
)

const (
	StoreDriverExcel    = "excel"
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

const defaultContextTimeout = 10 * time.Second

// GetStoreDriver selects the registration store backend. Unknown values fall
// back to the spreadsheet file.
func GetStoreDriver() string {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("STORE_DRIVER")))
	switch v {
	case StoreDriverPostgres, StoreDriverMemory:
		return v
	case "", StoreDriverExcel:
		return StoreDriverExcel
	default:
		GetLogrusInstance().Warnf("unknown STORE_DRIVER %q, using %s", v, StoreDriverExcel)
		return StoreDriverExcel
	}
}

func GetRegistrationFile() string {
	v := os.Getenv("REGISTRATION_FILE")
	if v == "" {
		return "registrations.xlsx"
	}
	return v
}

func GetRosterFile() string {
	v := os.Getenv("ROSTER_FILE")
	if v == "" {
		return "departments.csv"
	}
	return v
}

func GetContextTimeout() time.Duration {
	v := os.Getenv("CONTEXT_TIMEOUT")
	if v == "" {
		return defaultContextTimeout
	}

	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		GetLogrusInstance().Warnf("invalid CONTEXT_TIMEOUT %q, using %s", v, defaultContextTimeout)
		return defaultContextTimeout
	}
	return d
}

// GetPublicURL is the address encoded in the sign-up QR code. Empty means the
// request's own base URL.
func GetPublicURL() string {
	return strings.TrimSpace(os.Getenv("PUBLIC_URL"))
}
