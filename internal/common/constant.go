package common

const (
	// AuthorizationHeaderName carries the bearer token on HTTP requests.
	AuthorizationHeaderName = "Authorization"

	// AuthorizationMetadataKey is the gRPC metadata key for the same value.
	// gRPC lowercases metadata keys.
	AuthorizationMetadataKey = "authorization"

	// BearerPrefix is the case-sensitive scheme token followed by exactly
	// one separator.
	BearerPrefix = "Bearer "
)
