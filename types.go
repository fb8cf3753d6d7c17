package authcore

import (
	"context"
)

// SocialProvider identifies an external identity provider accepted by
// [Manager.LoginWithSocial].
type SocialProvider string

const (
	// ProviderGoogle is an exported constant used by the social login flow.
	ProviderGoogle SocialProvider = "google"
	// ProviderApple is an exported constant used by the social login flow.
	ProviderApple SocialProvider = "apple"
)

// Transport is the HTTP collaborator consumed by the Manager. Implementations
// return nil when the envelope reports success (decoding data into out when
// non-nil), *transport.APIError for a rejected envelope, and
// *transport.TransportError for network-level failure.
//
// The canonical implementation is [transport.Client]; tests substitute fakes
// with call counters.
type Transport interface {
	Post(ctx context.Context, path string, payload any, out any) error
	Get(ctx context.Context, path string, out any) error
}

// SocialResult is returned by [Manager.LoginWithSocial]. IsNewUser echoes the
// session flag as it stood when the login succeeded; the social flow itself
// does not determine newness — registration or upstream account detection
// must have set it.
type SocialResult struct {
	IsNewUser bool
}

// ResetCredential is the short-lived triple obtained from
// [Manager.VerifyPasswordResetCode] and required verbatim by
// [Manager.ResetPasswordComplete]. It is opaque to the client: ExpiresIn is
// informational only and never enforced locally.
type ResetCredential struct {
	UIDB64     string `json:"uidb64"`
	ResetToken string `json:"reset_token"`
	ExpiresIn  int64  `json:"expires_in"`
}

// Durable secure-store keys written by the login flows and cleared by Logout.
// StoreKeyUserData holds the composite JSON record that Rehydrate treats as
// the source of truth; the individually keyed fields are best-effort mirrors
// for code that only needs one value.
const (
	StoreKeyAccessToken  = "accessToken"
	StoreKeyRefreshToken = "refreshToken"
	StoreKeyUserData     = "userData"
	StoreKeyEmail        = "email"
	StoreKeyUsername     = "username"
	StoreKeyUserID       = "user_id"
	StoreKeyOnboarding   = "hasCompletedOnboarding"
	StoreKeyIsNewUser    = "isNewUser"
)

// durableKeys is the full set Logout must clear.
var durableKeys = []string{
	StoreKeyAccessToken,
	StoreKeyRefreshToken,
	StoreKeyUserData,
	StoreKeyEmail,
	StoreKeyUsername,
	StoreKeyUserID,
	StoreKeyOnboarding,
	StoreKeyIsNewUser,
}

// loginPayload is the success data shape shared by the login, social login,
// and profile endpoints.
type loginPayload struct {
	Tokens struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	} `json:"tokens"`
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	FullName    string `json:"full_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Image       string `json:"image,omitempty"`
}

// registerPayload is the success data shape of the registration endpoint.
type registerPayload struct {
	Message string `json:"message"`
}
