package clients

import "github.com/google/wire"

// ProviderSet bundles the dashboard-facing API clients for Wire.
// The uploader wires NewProcessorTrigger on its own.
var ProviderSet = wire.NewSet(
	NewAnalyticsClient,
	NewUploaderClient,
)
