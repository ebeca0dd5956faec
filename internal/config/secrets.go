package config

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"os"
)

// Channel credentials (Slack webhook URLs, Telegram bot tokens, SMTP
// passwords) are never written to the config snapshot in cleartext; they
// are AES-CFB encrypted under a key derived from the process environment
// and decrypted only at the moment a channel handler dials out.

func getEncryptionKey() []byte {
	key := os.Getenv("ALERTER_ENCRYPTION_KEY")
	if key == "" {
		key = "default-alerter-channel-key-2026"
	}
	// sha256 gives a fixed 32-byte AES-256 key regardless of the
	// operator-supplied key's length, rather than panicking on anything
	// shorter than 32 bytes.
	sum := sha256.Sum256([]byte(key))
	return sum[:]
}

// EncryptCredential encrypts a channel credential for storage in a
// ChannelConfig's EncryptedCreds field.
func EncryptCredential(text string) (string, error) {
	block, err := aes.NewCipher(getEncryptionKey())
	if err != nil {
		return "", err
	}
	plaintext := []byte(text)
	ciphertext := make([]byte, aes.BlockSize+len(plaintext))
	iv := ciphertext[:aes.BlockSize]
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", err
	}
	stream := cipher.NewCFBEncrypter(block, iv)
	stream.XORKeyStream(ciphertext[aes.BlockSize:], plaintext)
	return base64.URLEncoding.EncodeToString(ciphertext), nil
}

// DecryptCredential reverses EncryptCredential.
func DecryptCredential(cryptoText string) (string, error) {
	block, err := aes.NewCipher(getEncryptionKey())
	if err != nil {
		return "", err
	}
	ciphertext, err := base64.URLEncoding.DecodeString(cryptoText)
	if err != nil {
		return "", err
	}
	if len(ciphertext) < aes.BlockSize {
		return "", fmt.Errorf("config: encrypted credential too short")
	}
	iv := ciphertext[:aes.BlockSize]
	ciphertext = ciphertext[aes.BlockSize:]
	stream := cipher.NewCFBDecrypter(block, iv)
	stream.XORKeyStream(ciphertext, ciphertext)
	return string(ciphertext), nil
}
