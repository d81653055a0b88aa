package constants

// ContextKeyUserID is the gin context key under which the authenticated
// user's ID is stored by the auth middleware.
const ContextKeyUserID = "user_id"
