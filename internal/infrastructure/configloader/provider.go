package configloader

import (
	"github.com/google/wire"
)

// ProviderSet exposes configuration-derived dependencies for Wire graphs.
var ProviderSet = wire.NewSet(
	ProvideServiceMetadata,
	ProvideBootstrap,
	ProvideServerConfig,
	ProvideDataConfig,
	ProvideStorageConfig,
	ProvideProcessorConfig,
	ProvideDashboardConfig,
)

// ProvideServiceMetadata returns the resolved ServiceMetadata from the loader.
func ProvideServiceMetadata(l *Loader) ServiceMetadata {
	if l == nil {
		return ServiceMetadata{}
	}
	return l.Service
}

// ProvideBootstrap exposes the strongly typed bootstrap configuration.
func ProvideBootstrap(l *Loader) *Bootstrap {
	if l == nil {
		return nil
	}
	return l.Bootstrap
}

// ProvideServerConfig returns the server section of the bootstrap configuration.
func ProvideServerConfig(bc *Bootstrap) *Server {
	if bc == nil {
		return nil
	}
	return &bc.Server
}

// ProvideDataConfig returns the data section of the bootstrap configuration.
func ProvideDataConfig(bc *Bootstrap) *Data {
	if bc == nil {
		return nil
	}
	return &bc.Data
}

// ProvideStorageConfig returns the object storage section.
func ProvideStorageConfig(bc *Bootstrap) *Storage {
	if bc == nil {
		return nil
	}
	return &bc.Storage
}

// ProvideProcessorConfig returns the processor trigger/worker section.
func ProvideProcessorConfig(bc *Bootstrap) *Processor {
	if bc == nil {
		return nil
	}
	return &bc.Processor
}

// ProvideDashboardConfig returns the dashboard section.
func ProvideDashboardConfig(bc *Bootstrap) *Dashboard {
	if bc == nil {
		return nil
	}
	return &bc.Dashboard
}
