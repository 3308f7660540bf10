package interactdapp

import (
	"github.com/code-payments/interact-dapp/pkg/solana"
)

var (
	PROGRAM_ADDRESS = solana.MustPublicKeyFromBase58("DC2y62K2opFJ21AMZwcYG7HDaNfUTU4YZszpnpG18r61")
	PROGRAM_ID      = PROGRAM_ADDRESS
)

var (
	depositEarnInstructionDiscriminator  = [8]byte{22, 219, 117, 134, 59, 142, 142, 178}
	withdrawEarnInstructionDiscriminator = [8]byte{70, 218, 208, 97, 147, 24, 19, 169}
	proxySwapInstructionDiscriminator    = [8]byte{19, 44, 130, 148, 72, 56, 44, 238}
)
