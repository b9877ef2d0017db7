// Command mint-token prints a signed access token for a username. It is a
// local development shortcut; production tokens come from the identity
// provider.
//
// Usage: mint-token <username> [ttl]
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mdelrosario/textbook-catalog-backend/internal/auth"
	"github.com/mdelrosario/textbook-catalog-backend/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: mint-token <username> [ttl]")
	}
	username := os.Args[1]

	ttl := 24 * time.Hour
	if len(os.Args) > 2 {
		parsed, err := time.ParseDuration(os.Args[2])
		if err != nil {
			log.Fatalf("parse ttl: %v", err)
		}
		ttl = parsed
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	manager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
	token, err := manager.GenerateAccessToken(username, ttl)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}

	fmt.Println(token)
}
