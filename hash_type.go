package dircmp

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"hash"
)

// HashType represents the type of hash algorithm
type HashType string

const (
	HashNone   HashType = ""
	HashMD5    HashType = "md5"
	HashSHA1   HashType = "sha1"
	HashSHA256 HashType = "sha256"
)

func (h HashType) valid() bool {
	switch h {
	case HashNone, HashMD5, HashSHA1, HashSHA256:
		return true
	}
	return false
}

func (h HashType) new() hash.Hash {
	switch h {
	case HashMD5:
		return md5.New()
	case HashSHA1:
		return sha1.New()
	default:
		return sha256.New()
	}
}
