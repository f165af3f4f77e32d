package main

import (
	"fmt"
	"time"

	"reflectometry/internal/config"
	"reflectometry/pkg/serrors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// tokenIssuer is the iss claim of tokens minted by the jwt command.
const tokenIssuer = "reflectometry"

// signToken mints an RS256 token for subject, which must be a user UUID.
func signToken(privateKeyPEM, subject string, ttl time.Duration, now time.Time) (string, error) {
	if _, err := uuid.Parse(subject); err != nil {
		return "", serrors.Wrap(serrors.ErrBadRequest, err, "subject %q is not a user ID", subject)
	}
	if ttl <= 0 {
		return "", serrors.With(serrors.ErrBadRequest, "ttl must be positive, got %s", ttl)
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privateKeyPEM))
	if err != nil {
		return "", serrors.Wrap(serrors.ErrConfiguration, err, "could not parse RSA private key")
	}

	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("could not sign JWT: %w", err)
	}

	return signed, nil
}

// JWTCommand constructs the 'jwt' subcommand that prints a signed RS256
// token for a user. Without --subject a new user ID is generated.
func JWTCommand(cfg *config.Config) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:          "jwt",
		Short:        "Generates an API token for a user ID",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if subject == "" {
				subject = uuid.NewString()
				cmd.PrintErrln("user id:", subject)
			}

			signed, err := signToken(cfg.JWT.PrivateKey, subject, ttl, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), signed)

			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "User ID the token is issued to")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token TTL (e.g., 30s, 15m, 1h)")

	return cmd
}
