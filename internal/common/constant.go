package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the optional scheme prefix in front of the token.
const BearerScheme = "Bearer"

// RequestIDHeaderName is echoed back on every API response.
const RequestIDHeaderName = "X-Request-ID"
