package entity

// ProviderType names an external identity provider.
type ProviderType string

const (
	ProviderTypeGoogle ProviderType = "google"
)
