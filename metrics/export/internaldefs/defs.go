package internaldefs

import (
	authcore "github.com/bazr-app/authcore"
)

// CounterDef defines a public type used by authcore APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   authcore.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by authcore APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   authcore.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the session manager.
var CounterDefs = []CounterDef{
	{ID: authcore.MetricLoginSuccess, Name: "authcore_login_success_total", Help: "Successful login attempts."},
	{ID: authcore.MetricLoginFailure, Name: "authcore_login_failure_total", Help: "Failed login attempts."},
	{ID: authcore.MetricSocialLoginSuccess, Name: "authcore_social_login_success_total", Help: "Successful social login attempts."},
	{ID: authcore.MetricSocialLoginFailure, Name: "authcore_social_login_failure_total", Help: "Failed social login attempts."},
	{ID: authcore.MetricSocialUnknownProvider, Name: "authcore_social_unknown_provider_total", Help: "Social login attempts with an unsupported provider."},
	{ID: authcore.MetricRegisterSuccess, Name: "authcore_register_success_total", Help: "Successful registrations."},
	{ID: authcore.MetricRegisterFailure, Name: "authcore_register_failure_total", Help: "Failed registrations."},
	{ID: authcore.MetricRegisterDuplicate, Name: "authcore_register_duplicate_total", Help: "Registrations rejected as duplicate."},
	{ID: authcore.MetricEmailVerificationSuccess, Name: "authcore_email_verification_success_total", Help: "Successful email verifications."},
	{ID: authcore.MetricEmailVerificationFailure, Name: "authcore_email_verification_failure_total", Help: "Failed email verifications."},
	{ID: authcore.MetricEmailVerificationAttemptsExceeded, Name: "authcore_email_verification_attempts_exceeded_total", Help: "Email verification challenges invalidated due to attempt cap."},
	{ID: authcore.MetricVerificationCodeResent, Name: "authcore_verification_code_resent_total", Help: "Verification code resend requests."},
	{ID: authcore.MetricPasswordResetRequest, Name: "authcore_password_reset_request_total", Help: "Password reset requests."},
	{ID: authcore.MetricPasswordResetCodeVerified, Name: "authcore_password_reset_code_verified_total", Help: "Accepted password reset codes."},
	{ID: authcore.MetricPasswordResetCodeRejected, Name: "authcore_password_reset_code_rejected_total", Help: "Rejected password reset codes."},
	{ID: authcore.MetricPasswordResetCompleteSuccess, Name: "authcore_password_reset_complete_success_total", Help: "Successful password reset completions."},
	{ID: authcore.MetricPasswordResetCompleteFailure, Name: "authcore_password_reset_complete_failure_total", Help: "Failed password reset completions."},
	{ID: authcore.MetricPasswordResetTokenExpired, Name: "authcore_password_reset_token_expired_total", Help: "Password reset completions rejected for expired credentials."},
	{ID: authcore.MetricLogout, Name: "authcore_logout_total", Help: "Logout operations."},
	{ID: authcore.MetricLogoutPartialClear, Name: "authcore_logout_partial_clear_total", Help: "Logouts where durable keys could not all be cleared."},
	{ID: authcore.MetricRehydrateHit, Name: "authcore_rehydrate_hit_total", Help: "App starts restoring a stored session."},
	{ID: authcore.MetricRehydrateMiss, Name: "authcore_rehydrate_miss_total", Help: "App starts with no usable stored session."},
	{ID: authcore.MetricProfileFetchSuccess, Name: "authcore_profile_fetch_success_total", Help: "Successful profile refreshes."},
	{ID: authcore.MetricProfileFetchFailure, Name: "authcore_profile_fetch_failure_total", Help: "Failed profile refreshes."},
	{ID: authcore.MetricOnboardingCompleted, Name: "authcore_onboarding_completed_total", Help: "Onboarding completions."},
	{ID: authcore.MetricTransportFailure, Name: "authcore_transport_failure_total", Help: "Network-level request failures."},
	{ID: authcore.MetricStoreWriteFailure, Name: "authcore_store_write_failure_total", Help: "Secure store write failures."},
}

// HistogramDefs is an exported constant or variable used by the session manager.
var HistogramDefs = []HistogramDef{
	{ID: authcore.MetricLoginLatency, Name: "authcore_login_latency_seconds", Help: "Login latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the session manager.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the session manager.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
