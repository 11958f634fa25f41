package contexthelpers

type contextKey string

const VisitorIDContextKey = contextKey("visitorID")
const CurrentPathContextKey = contextKey("currentPath")
const CspNonceContextKey = contextKey("cspNonce")
