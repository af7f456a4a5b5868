// Command createtoken mints access tokens for capture terminals and operators.
//
//	go run ./cmd/createtoken -role terminal -id portaria-01 -ttl 8760h
//	go run ./cmd/createtoken -role user -id maria -subject 529.982.247-25
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/config"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/validator"
)

func main() {
	role := flag.String("role", string(user.RoleTerminal), "token role: super_admin, admin, user or terminal")
	id := flag.String("id", "", "caller identifier stored in user_id")
	subject := flag.String("subject", "", "worker CPF bound to a user token")
	ttl := flag.Duration("ttl", 0, "token lifetime, defaults to JWT_ACCESS_EXPIRATION_TIME")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	if *id == "" {
		fmt.Fprintln(os.Stderr, "-id is required")
		os.Exit(2)
	}

	principal := user.Principal{ID: *id, Role: user.Role(*role)}
	if *subject != "" {
		cpf := validator.NormalizeCPF(*subject)
		if !validator.IsValidCPF(cpf) {
			fmt.Fprintln(os.Stderr, "invalid CPF:", *subject)
			os.Exit(2)
		}
		principal.SubjectID = &cpf
	} else if principal.Role == user.RoleUser {
		fmt.Fprintln(os.Stderr, "-subject is required for user tokens")
		os.Exit(2)
	}

	lifetime := *ttl
	if lifetime == 0 {
		lifetime, err = time.ParseDuration(cfg.JWT.AccessExpiration)
		if err != nil {
			fmt.Fprintln(os.Stderr, "invalid JWT_ACCESS_EXPIRATION_TIME:", err)
			os.Exit(1)
		}
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	token, expiresAt, err := JWTService.GenerateAccessTokenWithTTL(principal, lifetime)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error generating token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at %s\n", time.Unix(expiresAt, 0).Format(time.RFC3339))
}
