package lending

import (
	"crypto/ed25519"

	"github.com/code-payments/interact-dapp/pkg/solana/system"
	"github.com/code-payments/interact-dapp/pkg/solana/token"
)

var (
	SYSTEM_PROGRAM_ID           = system.ProgramID
	ASSOCIATED_TOKEN_PROGRAM_ID = token.AssociatedTokenAccountProgramKey
)

func putDiscriminator(dst []byte, v [8]byte, offset *int) {
	copy(dst[*offset:], v[:])
	*offset += len(v)
}

func tokenProgramOrDefault(v ed25519.PublicKey) ed25519.PublicKey {
	if len(v) == 0 {
		return token.ProgramKey
	}
	return v
}
