package redis

// Key prefixes for credential data. auth:<username> holds the password
// hash, data:<username> holds the JSON user-data blob.
const (
	authPrefix = "auth:"
	dataPrefix = "data:"
)

// authKey returns the Redis key for a username's password hash
func authKey(username string) string {
	return authPrefix + username
}

// dataKey returns the Redis key for a username's user-data record
func dataKey(username string) string {
	return dataPrefix + username
}
