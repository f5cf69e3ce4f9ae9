package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/anocare/anocare/internal/server/models"
)

func printApplicant(a models.Applicant) {
	fmt.Printf("%s  %-20s  %-15s  %-10s  active=%v", a.Address, a.Alias, a.Specialty, a.Status, a.IsActive)
	if a.MintTx != "" {
		fmt.Printf("  mint=%s", a.MintTx)
	}
	fmt.Println()
}

func (a *App) list(ctx context.Context) {
	applicants, err := a.api.ListApplicants(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}

	for _, item := range applicants {
		printApplicant(item)
	}
}

func (a *App) pending(ctx context.Context) {
	applicants, err := a.api.ListPending(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}

	for _, item := range applicants {
		printApplicant(item)
	}
}

func (a *App) status(ctx context.Context, address string) {
	status, err := a.api.UserStatus(ctx, address)
	if err != nil {
		log.Println(err.Error())
		return
	}

	fmt.Println(status)
}

func (a *App) toggle(ctx context.Context, address string) {
	user, err := a.api.ToggleActive(ctx, address)
	if err != nil {
		log.Println(err.Error())
		return
	}

	fmt.Printf("%s active=%v\n", user.Address, user.IsActive)
}
