package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"finbook/infra/initializer"
	"finbook/pkg/app"
	"finbook/pkg/config"
	"finbook/pkg/domain/user"
	"finbook/pkg/dto"

	"github.com/google/uuid"
)

func usage() {
	fmt.Println("Usage: cli <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  register <username> <email> <password> [role]")
	fmt.Println("  in <user_id> <account_id> <amount> <currency>")
	fmt.Println("  out <user_id> <account_id> <amount> <currency>")
	fmt.Println("  balance <user_id> <account_id>")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Println("Failed to load configuration:", err)
		os.Exit(1)
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		fmt.Println("Failed to initialize dependencies:", err)
		os.Exit(1)
	}
	a := app.New(deps, cfg)
	ctx := context.Background()

	switch cmd := os.Args[1]; cmd {
	case "register":
		if len(os.Args) < 5 {
			fmt.Println("Usage: register <username> <email> <password> [role]")
			return
		}
		role := user.RoleSuperuser
		if len(os.Args) > 5 {
			role = user.Role(os.Args[5])
		}
		u, err := a.UserService.Register(ctx, os.Args[2], os.Args[3], os.Args[4], role)
		if err != nil {
			fmt.Println("Error registering user:", err)
			os.Exit(1)
		}
		fmt.Printf("User registered: ID=%s, Role=%s\n", u.ID, u.Role)
	case "in", "out":
		if len(os.Args) < 6 {
			fmt.Printf("Usage: %s <user_id> <account_id> <amount> <currency>\n", cmd)
			return
		}
		userID, accountID := mustParseIDs(os.Args[2], os.Args[3])
		amount, err := strconv.ParseFloat(os.Args[4], 64)
		if err != nil {
			fmt.Println("Invalid amount:", err)
			os.Exit(1)
		}
		code := os.Args[5]
		if cmd == "in" {
			_, err = a.PostingService.PostIn(ctx, dto.PostIn{
				UserID: userID, AccountID: accountID, Amount: amount, Currency: code,
			})
		} else {
			_, err = a.PostingService.PostOut(ctx, dto.PostOut{
				UserID: userID, AccountID: accountID, Amount: amount, Currency: code,
			})
		}
		if err != nil {
			fmt.Println("Error posting:", err)
			os.Exit(1)
		}
		printBalance(ctx, a, userID, accountID)
	case "balance":
		if len(os.Args) < 4 {
			fmt.Println("Usage: balance <user_id> <account_id>")
			return
		}
		userID, accountID := mustParseIDs(os.Args[2], os.Args[3])
		printBalance(ctx, a, userID, accountID)
	default:
		fmt.Println("Unknown command:", cmd)
		usage()
	}
}

func mustParseIDs(rawUser, rawAccount string) (userID, accountID uuid.UUID) {
	userID, err := uuid.Parse(rawUser)
	if err != nil {
		fmt.Println("Invalid user ID:", err)
		os.Exit(1)
	}
	accountID, err = uuid.Parse(rawAccount)
	if err != nil {
		fmt.Println("Invalid account ID:", err)
		os.Exit(1)
	}
	return userID, accountID
}

func printBalance(ctx context.Context, a *app.App, userID, accountID uuid.UUID) {
	acct, err := a.AccountService.Get(ctx, userID, accountID)
	if err != nil {
		fmt.Println("Error fetching balance:", err)
		os.Exit(1)
	}
	fmt.Printf("Account %s balance: %d %s (minor units)\n", acct.ID, acct.BalanceMinor, acct.Currency)
}
