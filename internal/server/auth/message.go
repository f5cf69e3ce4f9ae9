package auth

// LoginMessage is the exact text a wallet signs to authenticate. Server and
// client must agree on it byte-for-byte.
func LoginMessage(nonce string) string {
	return "anocare-admin-login:" + nonce
}
