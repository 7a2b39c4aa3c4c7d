package crypto_util

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
)

// CalculateMD5 计算输入的 MD5 哈希值。
// 警告：MD5 不安全，不应用于安全相关的用途。
func CalculateMD5(data []byte) string {
	hash := md5.Sum(data)
	return hex.EncodeToString(hash[:])
}

// CalculateSHA256 计算输入的 SHA256 哈希值。
func CalculateSHA256(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
