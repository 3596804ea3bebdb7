package model

// Cache key layout, kept in one place so the namespacing scheme cannot drift
// between components. Every key a user can touch starts with "{userId}-",
// which is also the prefix the broad user token is scoped to.

// ListKey is the per-user set of document names, used purely as an index.
func ListKey(userID string) string { return userID + "-list" }

// DocumentKey is the dictionary holding one document's fields.
func DocumentKey(userID, name string) string { return userID + "-" + name }

// TokenKey holds the cached broad-scope token JSON for a user.
func TokenKey(userID string) string { return userID + "-token" }

// NotificationTopic is the per-user pub/sub topic the broad token grants.
func NotificationTopic(userID string) string { return userID + "-notifications" }

// KeyPrefix is the namespace prefix the broad user token is scoped to.
func KeyPrefix(userID string) string { return userID + "-" }
