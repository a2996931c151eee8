package common

// AccessTokenHeaderName is the gRPC metadata key carrying the session token.
const AccessTokenHeaderName = "access_token"

// DefaultCategory is assigned to records created without a category.
const DefaultCategory = "General"
