package app

import (
	"fmt"
	"log/slog"

	"github.com/matchdayhq/rosterd/pkg/idx"
	"github.com/matchdayhq/rosterd/pkg/jwtx"
)

// SessionKeys bundles the signing key and its verification set. Keys are
// ephemeral: a restart invalidates all outstanding sessions, which is an
// acceptable trade for never persisting private key material.
type SessionKeys struct {
	Signer   *jwtx.EdDSASigner
	KeySet   *jwtx.KeySet
	Verifier jwtx.Verifier
}

// InitSessionKeys generates a fresh Ed25519 signing key at startup.
func InitSessionKeys(issuer string, logger *slog.Logger) (*SessionKeys, error) {
	priv, err := jwtx.GenerateEd25519Key()
	if err != nil {
		return nil, fmt.Errorf("generate session key: %w", err)
	}

	kid := idx.New().String()
	signer, err := jwtx.NewSignerEdDSA(kid, priv)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}

	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)

	logger.Info("session signing key generated", "kid", kid, "alg", "EdDSA")

	return &SessionKeys{
		Signer:   signer,
		KeySet:   keys,
		Verifier: jwtx.NewVerifierEdDSA(keys, issuer),
	}, nil
}
