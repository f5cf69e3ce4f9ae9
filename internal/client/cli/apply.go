package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/anocare/anocare/internal/cryptox"
	"github.com/anocare/anocare/internal/server/models"
)

// applyCmd collects the application form interactively, reads both identity
// documents from disk and runs the protected submission pipeline.
func (a *App) applyCmd(ctx context.Context) {
	form := &models.Applicant{}

	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Enter wallet address", &form.Address},
		{"Enter alias", &form.Alias},
		{"Enter contact email", &form.Email},
		{"Enter specialty", &form.Specialty},
		{"Enter region", &form.Region},
		{"Enter years of experience", &form.Experience},
		{"Enter credentials", &form.Credentials},
		{"Enter license issuer", &form.LicenseIssuer},
		{"Enter message (optional)", &form.Message},
	}

	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, os.Stdout)
		if err != nil {
			log.Println(err.Error())
			return
		}
		*f.dst = v
	}

	licensePath, err := getSimpleText(a.reader, "Path to license file", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}
	license, err := os.ReadFile(licensePath)
	if err != nil {
		log.Println(err.Error())
		return
	}

	idPath, err := getSimpleText(a.reader, "Path to national id file", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}
	nationalID, err := os.ReadFile(idPath)
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

	stored, err := a.apply.Apply(ctx, form, license, nationalID, pepper)
	if err != nil {
		log.Printf("Submission failed: %s", err.Error())
		return
	}

	fmt.Printf("Submitted. Status: %s\n", stored.Status)
}
