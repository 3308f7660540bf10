package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/code-payments/interact-dapp/pkg/interact"
	"github.com/code-payments/interact-dapp/pkg/solana"
	"github.com/code-payments/interact-dapp/pkg/solana/vaults"
)

func newLookupTableCommand(a *app) *cobra.Command {
	var vaultAccountsPath string

	cmd := &cobra.Command{
		Use:   "lookup-table",
		Short: "Address lookup tables for v0 transactions",
	}

	create := &cobra.Command{
		Use:   "create [address...]",
		Short: "Create a lookup table owned by the payer",
		Long: "Create a lookup table owned by the payer and extend it with the given addresses.\n" +
			"With --vault-accounts, the lookupable accounts of a vault operate call are added,\n" +
			"which is what vault operations need to fit in a transaction.",
		RunE: func(cmd *cobra.Command, args []string) error {
			addresses, err := solana.PublicKeysFromBase58(args)
			if err != nil {
				return err
			}

			if len(vaultAccountsPath) > 0 {
				set, err := vaults.LoadAccountSet(vaultAccountsPath)
				if err != nil {
					return err
				}
				vaultAddresses, err := a.invoker.VaultLookupTableAddresses(set)
				if err != nil {
					return err
				}
				addresses = append(addresses, vaultAddresses...)
			}

			if len(addresses) == 0 {
				return errors.New("no addresses given")
			}

			table, err := a.invoker.CreateLookupTable(cmd.Context(), addresses)
			if table != nil {
				printLookupTable(cmd, table.AddressString(), table.Invocations)
			}
			if err != nil {
				printError(cmd, err)
				return err
			}
			return nil
		},
	}
	create.Flags().StringVar(&vaultAccountsPath, "vault-accounts", "", "vault account set JSON file")

	cmd.AddCommand(create)
	return cmd
}

func printLookupTable(cmd *cobra.Command, address string, invocations []*interact.Invocation) {
	fmt.Fprintf(cmd.OutOrStdout(), "lookup table: %s\n", address)
	for _, invocation := range invocations {
		printInvocation(cmd, invocation)
	}
}
