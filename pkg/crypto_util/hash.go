package crypto_util

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
)

// CalculateMD5 returns the hex MD5 of the input.
// Warning: MD5 is not safe for security purposes; only used for legacy export checksums.
func CalculateMD5(data []byte) string {
	hash := md5.Sum(data)
	return hex.EncodeToString(hash[:])
}

// CalculateSHA256 returns the hex SHA-256 of the input.
// Used to fingerprint uploaded earnings files for traceability.
func CalculateSHA256(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
