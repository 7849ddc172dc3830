package logs

// ColumnType classifies how a declared column is parsed and stored
type ColumnType string

const (
	TypeTimestamp   ColumnType = "timestamp"
	TypeString      ColumnType = "string"
	TypeCategorical ColumnType = "categorical"
	TypeFloat       ColumnType = "float"
	TypeInt         ColumnType = "int"
	TypeBool        ColumnType = "bool"
)

// Sentinel values for the categorical columns. The generator emits exactly
// these; the loader treats anything outside the closed set as a schema
// violation.
const (
	LoginSuccess = "SUCCESS"
	LoginFailed  = "FAILED"

	SessionCompleted  = "COMPLETED"
	SessionTimeout    = "TIMEOUT"
	SessionTerminated = "TERMINATED"

	AuthResultAuthentic   = "AUTHENTIC"
	AuthResultUnauthentic = "UNAUTHENTIC"

	EventNormal       = "NORMAL"
	EventBlankRequest = "BLANK_REQUEST"
	EventDOSAttack    = "DOS_ATTACK"
	EventSQLInjection = "SQL_INJECTION"
	EventXSSAttempt   = "XSS_ATTEMPT"

	SeverityLow      = "LOW"
	SeverityMedium   = "MEDIUM"
	SeverityHigh     = "HIGH"
	SeverityCritical = "CRITICAL"

	SubscriptionActive    = "ACTIVE"
	SubscriptionExpired   = "EXPIRED"
	SubscriptionCancelled = "CANCELLED"
)

// Field describes one declared column of a dataset
type Field struct {
	Name       string
	Type       ColumnType
	Nullable   bool     // empty cells allowed (failure_reason on authentic rows)
	Categories []string // closed value set for categorical columns
}

// Schema declares the exact column set of one dataset kind
type Schema struct {
	Kind   Kind
	Fields []Field
}

// ColumnNames returns the declared column names in order
func (s Schema) ColumnNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Field looks up a declared field by column name
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// SchemaFor returns the declared schema of a dataset kind
func SchemaFor(kind Kind) Schema {
	switch kind {
	case KindLogin:
		return Schema{Kind: kind, Fields: []Field{
			{Name: "timestamp", Type: TypeTimestamp},
			{Name: "user_id", Type: TypeString},
			{Name: "ip_address", Type: TypeString},
			{Name: "login_status", Type: TypeCategorical, Categories: []string{LoginSuccess, LoginFailed}},
			{Name: "login_method", Type: TypeCategorical, Categories: []string{"PASSWORD", "OAUTH", "SSO", "TWO_FACTOR"}},
			{Name: "device_type", Type: TypeCategorical, Categories: []string{"DESKTOP", "MOBILE", "TABLET"}},
			{Name: "browser", Type: TypeCategorical, Categories: []string{"CHROME", "FIREFOX", "SAFARI", "EDGE"}},
		}}
	case KindSession:
		return Schema{Kind: kind, Fields: []Field{
			{Name: "session_id", Type: TypeString},
			{Name: "user_id", Type: TypeString},
			{Name: "duration_minutes", Type: TypeFloat},
			{Name: "pages_accessed", Type: TypeInt},
			{Name: "data_transferred_mb", Type: TypeFloat},
			{Name: "session_status", Type: TypeCategorical, Categories: []string{SessionCompleted, SessionTimeout, SessionTerminated}},
		}}
	case KindAuth:
		return Schema{Kind: kind, Fields: []Field{
			{Name: "timestamp", Type: TypeTimestamp},
			{Name: "attempted_username", Type: TypeString},
			{Name: "ip_address", Type: TypeString},
			{Name: "auth_result", Type: TypeCategorical, Categories: []string{AuthResultAuthentic, AuthResultUnauthentic}},
			{Name: "failure_reason", Type: TypeCategorical, Nullable: true, Categories: []string{"INVALID_PASSWORD", "UNKNOWN_USER", "EXPIRED_TOKEN", "ACCOUNT_LOCKED"}},
			{Name: "geolocation", Type: TypeString},
			{Name: "attempt_count", Type: TypeInt},
		}}
	case KindSecurity:
		return Schema{Kind: kind, Fields: []Field{
			{Name: "timestamp", Type: TypeTimestamp},
			{Name: "event_type", Type: TypeCategorical, Categories: []string{EventNormal, EventBlankRequest, EventDOSAttack, EventSQLInjection, EventXSSAttempt}},
			{Name: "source_ip", Type: TypeString},
			{Name: "requests_per_second", Type: TypeFloat},
			{Name: "blocked", Type: TypeBool},
			{Name: "severity", Type: TypeCategorical, Categories: []string{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}},
		}}
	case KindSubscription:
		return Schema{Kind: kind, Fields: []Field{
			{Name: "subscription_id", Type: TypeString},
			{Name: "user_id", Type: TypeString},
			{Name: "service_type", Type: TypeCategorical, Categories: []string{"STREAMING", "STORAGE", "COMPUTE", "ANALYTICS", "SECURITY"}},
			{Name: "service_name", Type: TypeString},
			{Name: "monthly_fee_usd", Type: TypeFloat},
			{Name: "subscription_status", Type: TypeCategorical, Categories: []string{SubscriptionActive, SubscriptionExpired, SubscriptionCancelled}},
			{Name: "auto_renew", Type: TypeBool},
		}}
	}
	return Schema{Kind: kind}
}
