// Command jwks-to-pem prints the Supabase Auth signing key as PEM for SUPABASE_JWT_SECRET.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"time"

	"vendorhub/internal/logger"
	"vendorhub/internal/util"
)

func main() {
	url := flag.String("url", "http://127.0.0.1:54321/auth/v1/.well-known/jwks.json", "JWKS endpoint")
	flag.Parse()
	logger := logger.New()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, *url, nil)
	if err != nil {
		logger.Fatal().Msgf("Invalid JWKS URL: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		logger.Fatal().Msgf("Error fetching JWKS: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		logger.Fatal().Msgf("JWKS endpoint returned %s", resp.Status)
	}

	set, err := util.DecodeJWKS(resp.Body)
	if err != nil {
		logger.Fatal().Msgf("%v", err)
	}
	out, err := set.Keys[0].PEM()
	if err != nil {
		logger.Fatal().Msgf("%v", err)
	}
	fmt.Print(out)
}
