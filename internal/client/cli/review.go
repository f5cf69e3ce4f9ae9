package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/anocare/anocare/internal/cryptox"
	"github.com/anocare/anocare/internal/server/models"
)

func (a *App) findApplicant(ctx context.Context, address string) (*models.Applicant, error) {
	applicants, err := a.api.ListApplicants(ctx)
	if err != nil {
		return nil, err
	}

	for i := range applicants {
		if strings.EqualFold(applicants[i].Address, address) {
			return &applicants[i], nil
		}
	}

	return nil, fmt.Errorf("no application for %s", address)
}

// decrypt recovers an applicant's documents and writes them next to the
// working directory. Requires a prior admin login; the privilege is
// re-checked on-chain before any ciphertext is fetched.
func (a *App) decrypt(ctx context.Context, address string) {
	if !a.isLoggedIn() {
		fmt.Println("Log in first")
		return
	}

	applicant, err := a.findApplicant(ctx, address)
	if err != nil {
		log.Println(err.Error())
		return
	}

	pepper, err := getSecret("Enter key-wrap pepper", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}
	defer cryptox.Wipe(pepper)

	ctx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	defer cancel()

	docs := []struct {
		name string
		doc  models.ProtectedDocument
	}{
		{"license", applicant.LicenseFile},
		{"national_id", applicant.NationalIDFile},
	}

	for _, d := range docs {
		plaintext, err := a.review.DecryptDocument(ctx, d.doc, a.address, pepper)
		if err != nil {
			log.Printf("Decrypting %s failed: %s", d.name, err.Error())
			return
		}

		out := fmt.Sprintf("%s_%s", strings.ToLower(address), d.name)
		if err := os.WriteFile(out, plaintext, 0o600); err != nil {
			log.Println(err.Error())
			return
		}
		fmt.Printf("Wrote %s\n", out)
	}
}

func (a *App) approve(ctx context.Context, address string) {
	if err := a.api.Approve(ctx, address); err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Println("Approved")
}

func (a *App) reject(ctx context.Context, address string) {
	if err := a.api.Reject(ctx, address); err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Println("Rejected")
}
