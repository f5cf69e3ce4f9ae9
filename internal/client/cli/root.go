package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.address == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.address)
}

func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to Anocare CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("anocare %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: list, pending, decrypt <address>, approve <address>, reject <address>, status <address>, toggle <address>, exit")
			} else {
				fmt.Println("Available commands: apply, list, status <address>, login, exit")
			}

		case "login":
			a.login(ctx)
		case "apply":
			a.applyCmd(ctx)
		case "list":
			a.list(ctx)
		case "pending":
			a.pending(ctx)
		case "status":
			if len(args) == 0 {
				fmt.Println("Usage: status <address>")
				continue
			}
			a.status(ctx, args[0])
		case "toggle":
			if len(args) == 0 {
				fmt.Println("Usage: toggle <address>")
				continue
			}
			a.toggle(ctx, args[0])
		case "decrypt":
			if len(args) == 0 {
				fmt.Println("Usage: decrypt <address>")
				continue
			}
			a.decrypt(ctx, args[0])
		case "approve":
			if len(args) == 0 {
				fmt.Println("Usage: approve <address>")
				continue
			}
			a.approve(ctx, args[0])
		case "reject":
			if len(args) == 0 {
				fmt.Println("Usage: reject <address>")
				continue
			}
			a.reject(ctx, args[0])
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}
