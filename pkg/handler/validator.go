package handler

import (
	"crypto/ed25519"
	"encoding/hex"
	"log"
)

// VerifyDiscordRequest validates the Ed25519 signature of an inbound
// interaction webhook. The signed message is the byte-concatenation of
// the timestamp header and the raw body.
// This ensures the request came from Discord
// See: https://discord.com/developers/docs/interactions/overview#setting-up-an-endpoint-validating-security-request-headers
func VerifyDiscordRequest(body []byte, timestamp string, signature string, publicKeyHex string) bool {
	// Missing headers are a verification failure, not an error
	if signature == "" || timestamp == "" {
		log.Printf("Missing signature or timestamp header")
		return false
	}

	publicKey, err := hex.DecodeString(publicKeyHex)
	if err != nil || len(publicKey) != ed25519.PublicKeySize {
		log.Printf("Invalid Discord public key")
		return false
	}

	sig, err := hex.DecodeString(signature)
	if err != nil || len(sig) != ed25519.SignatureSize {
		log.Printf("Malformed signature: %s", signature)
		return false
	}

	message := append([]byte(timestamp), body...)
	if !ed25519.Verify(ed25519.PublicKey(publicKey), message, sig) {
		log.Printf("Invalid signature for timestamp %s", timestamp)
		return false
	}

	log.Printf("Discord request signature validated successfully")
	return true
}
