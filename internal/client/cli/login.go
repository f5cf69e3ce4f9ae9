package cli

import (
	"context"
	"log"
	"os"

	"github.com/anocare/anocare/internal/cryptox"
	"github.com/anocare/anocare/internal/server/auth"
)

// getSimpleText and getSecret are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getSecret = GetSecret

// login authenticates the user as a reviewer: it requests a single-use nonce
// from the server, signs it with the wallet key and exchanges the signature
// for a session token. The key is wiped before returning.
func (a *App) login(ctx context.Context) {
	address, err := getSimpleText(a.reader, "Enter wallet address", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}

	keyHex, err := getSecret("Enter wallet private key (hex)", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}
	defer cryptox.Wipe(keyHex)

	nonce, err := a.api.Nonce(ctx, address)
	if err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return
	}

	signature, err := auth.SignPersonal(auth.LoginMessage(nonce), string(keyHex))
	if err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return
	}

	if _, err := a.api.Login(ctx, address, nonce, signature); err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return
	}

	a.address = address
	log.Printf("Login successful")
}
