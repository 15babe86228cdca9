package constants

const (
	// ContextKeyUserID is the gin context key holding the authenticated user ID.
	ContextKeyUserID = "user_id"
	// ContextKeyUser is the gin context key holding the authenticated user record.
	ContextKeyUser = "user"
	// ContextKeyTokenKey is the gin context key holding the presented token key.
	ContextKeyTokenKey = "token_key"
	// ContextKeyTenant is set by RequireTenantAccess.
	ContextKeyTenant = "tenant"
	// ContextKeyTemplate is set by RequireTemplateAccess.
	ContextKeyTemplate = "template_setting"

	// SessionCookieName is the cookie name used by the session store.
	SessionCookieName = "template_session"
	// SessionKeyToken is the session key storing the token key after login.
	SessionKeyToken = "auth_token"
)

const (
	MinPasswordLength = 8
	// MaxPasswordBytes is the longest input bcrypt accepts.
	MaxPasswordBytes = 72
	TokenKeyLength   = 40

	MaxUsernameLength     = 150
	MaxEmailLength        = 254
	MaxNameLength         = 30
	MaxPhoneNumberLength  = 17
	MaxBioLength          = 500
	MaxCompanyLength      = 100
	MaxWebsiteLength      = 200
	MaxTenantNameLength   = 100
	MaxTemplateNameLength = 50
)

const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPage keeps (page-1)*limit far from integer overflow.
	MaxPage = 1000000
)
