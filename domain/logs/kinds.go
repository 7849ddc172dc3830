package logs

import (
	"fmt"
	"strings"
)

// Kind identifies one of the five fixed server-log categories
type Kind string

const (
	KindLogin        Kind = "login"
	KindSession      Kind = "session"
	KindAuth         Kind = "auth"
	KindSecurity     Kind = "security"
	KindSubscription Kind = "subscription"
)

// AllKinds returns the five dataset kinds in report order
func AllKinds() []Kind {
	return []Kind{KindLogin, KindSession, KindAuth, KindSecurity, KindSubscription}
}

// Index returns the 1-based position of the kind, used in file and report names
func (k Kind) Index() int {
	switch k {
	case KindLogin:
		return 1
	case KindSession:
		return 2
	case KindAuth:
		return 3
	case KindSecurity:
		return 4
	case KindSubscription:
		return 5
	}
	return 0
}

// FileName returns the fixed CSV file name for the kind
func (k Kind) FileName() string {
	switch k {
	case KindLogin:
		return "1_user_login_log.csv"
	case KindSession:
		return "2_session_duration_log.csv"
	case KindAuth:
		return "3_authentication_attempts_log.csv"
	case KindSecurity:
		return "4_security_events_log.csv"
	case KindSubscription:
		return "5_service_subscription_log.csv"
	}
	return ""
}

// ReportFileName returns the fixed profiling report file name for the kind
func (k Kind) ReportFileName() string {
	return fmt.Sprintf("%d_profiling_report.html", k.Index())
}

// Title returns the human-readable analysis title for the kind
func (k Kind) Title() string {
	switch k {
	case KindLogin:
		return "User Login Analysis"
	case KindSession:
		return "Session Duration Analysis"
	case KindAuth:
		return "Authentication Attempts Analysis"
	case KindSecurity:
		return "Security Events Analysis"
	case KindSubscription:
		return "Service Subscription Analysis"
	}
	return string(k)
}

// Description returns the dataset description shown in profiling reports
func (k Kind) Description() string {
	switch k {
	case KindLogin:
		return "Analysis of user login attempts on the server"
	case KindSession:
		return "Analysis of user session durations and server access patterns"
	case KindAuth:
		return "Analysis of authenticated and unauthenticated access attempts"
	case KindSecurity:
		return "Analysis of blank requests, DOS attacks, and security threats"
	case KindSubscription:
		return "Analysis of user service subscriptions"
	}
	return ""
}

// ParseKind converts a string into a Kind
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllKinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown dataset kind: %q", s)
}

// String returns the string representation
func (k Kind) String() string {
	return string(k)
}
