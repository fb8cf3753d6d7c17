package authcore

import (
	"context"

	"github.com/google/uuid"
)

type deviceIDContextKey struct{}
type appVersionContextKey struct{}

// WithDeviceID attaches the installation's device identifier to ctx. The
// Manager includes it in audit events so flows can be correlated across a
// device's lifetime.
func WithDeviceID(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, deviceIDContextKey{}, deviceID)
}

// WithAppVersion attaches the app's semantic version to ctx for audit
// metadata.
func WithAppVersion(ctx context.Context, version string) context.Context {
	return context.WithValue(ctx, appVersionContextKey{}, version)
}

// NewDeviceID generates a fresh device identifier for first launch.
func NewDeviceID() string {
	return uuid.NewString()
}

func deviceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	deviceID, _ := ctx.Value(deviceIDContextKey{}).(string)
	return deviceID
}

func appVersionFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	version, _ := ctx.Value(appVersionContextKey{}).(string)
	return version
}
