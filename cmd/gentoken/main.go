// Dev tool to generate JWT tokens for local testing.
package main

import (
	"flag"
	"fmt"
	"os"

	"eventboard/config"
	"eventboard/internal/adapters/auth"
)

func main() {
	userID := flag.String("user", "", "user ID (UUID) to issue the token for")
	expiry := flag.Duration("expiry", 0, "token lifetime (default: TOKEN_EXPIRY from config)")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "usage: gentoken -user <user-id> [-expiry 24h]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	if *expiry <= 0 {
		*expiry = cfg.TokenExpiry
	}

	token, err := auth.NewJWTIssuer(cfg.JWTSecret).Issue(*userID, *expiry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "\nTest with:\ncurl -H 'Authorization: Bearer %s' http://localhost:%s/events/unapproved\n", token, cfg.Port)
}
