// Command dev-token mints a bearer token for local development, generating
// the signing key pair first when asked.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/forgo/gatekeeper/internal/config"
	"github.com/forgo/gatekeeper/pkg/jwt"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	privateKeyPath := flag.String("key", cfg.JWT.PrivateKeyPath, "Path to JWT private key")
	publicKeyPath := flag.String("pub", cfg.JWT.PublicKeyPath, "Path to JWT public key (with -keygen)")
	keygen := flag.Bool("keygen", false, "Generate a new key pair before signing")
	userID := flag.String("user", "user:dev", "User ID for the token")
	email := flag.String("email", "dev@gatekeeper.local", "Email for the token")
	roles := flag.String("roles", "admin", "Comma-separated roles")
	permissions := flag.String("permissions", "", "Comma-separated permissions")
	guard := flag.String("guard", cfg.JWT.Guard, "Guard the token is issued for")
	expMins := flag.Int("exp", 60*24, "Token expiration in minutes")
	outputJSON := flag.Bool("json", false, "Output as JSON")

	flag.Parse()

	if *keygen {
		if err := jwt.GenerateKeyPair(*privateKeyPath, *publicKeyPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating keys: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s and %s\n", *privateKeyPath, *publicKeyPath)
	}

	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: *privateKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: *expMins,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating JWT service: %v\n", err)
		fmt.Fprintf(os.Stderr, "\nGenerate keys with: dev-token -keygen\n")
		os.Exit(1)
	}

	claims := jwt.Claims{
		UserID:      *userID,
		Email:       *email,
		Roles:       splitList(*roles),
		Permissions: splitList(*permissions),
	}

	token, err := jwtService.Sign(claims, *guard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	if *outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(map[string]any{
			"access_token": token,
			"token_type":   "Bearer",
			"expires_in":   int(jwtService.GetExpiration().Seconds()),
			"user_id":      *userID,
			"guard":        *guard,
			"roles":        claims.Roles,
			"permissions":  claims.Permissions,
		})
		return
	}

	expTime := time.Now().Add(jwtService.GetExpiration())
	fmt.Println("Token Generated")
	fmt.Println("===============")
	fmt.Printf("User ID:     %s\n", *userID)
	fmt.Printf("Guard:       %s\n", *guard)
	fmt.Printf("Roles:       %s\n", strings.Join(claims.Roles, ", "))
	fmt.Printf("Permissions: %s\n", strings.Join(claims.Permissions, ", "))
	fmt.Printf("Expires:     %s\n", expTime.Format(time.RFC3339))
	fmt.Println()
	fmt.Println(token)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
