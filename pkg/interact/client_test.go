package interact

import (
	"crypto/ed25519"
	"sync"

	"github.com/code-payments/interact-dapp/pkg/solana"
)

// fakeClient is an in memory solana.Client. Simulation and confirmation
// outcomes are scripted by tests.
type fakeClient struct {
	sync.Mutex

	accounts      map[string]*solana.AccountInfo
	balances      map[string]uint64
	tokenBalances map[string]uint64

	simulationErr *solana.TransactionError
	submitErr     error
	statusErr     *solana.TransactionError

	simulated          []solana.Transaction
	submitted          []solana.Transaction
	airdrops           []uint64
	multipleAccountsRq int
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		accounts:      make(map[string]*solana.AccountInfo),
		balances:      make(map[string]uint64),
		tokenBalances: make(map[string]uint64),
	}
}

func (c *fakeClient) setAccount(address ed25519.PublicKey, info *solana.AccountInfo) {
	c.Lock()
	defer c.Unlock()
	c.accounts[string(address)] = info
}

func (c *fakeClient) GetAccountInfo(address ed25519.PublicKey, _ solana.Commitment) (solana.AccountInfo, error) {
	c.Lock()
	defer c.Unlock()

	info, ok := c.accounts[string(address)]
	if !ok {
		return solana.AccountInfo{}, solana.ErrNoAccountInfo
	}
	return *info, nil
}

func (c *fakeClient) GetMultipleAccounts(addresses []ed25519.PublicKey, _ solana.Commitment) ([]*solana.AccountInfo, error) {
	c.Lock()
	defer c.Unlock()

	c.multipleAccountsRq++

	res := make([]*solana.AccountInfo, len(addresses))
	for i, address := range addresses {
		res[i] = c.accounts[string(address)]
	}
	return res, nil
}

func (c *fakeClient) GetBalance(address ed25519.PublicKey) (uint64, error) {
	c.Lock()
	defer c.Unlock()

	lamports, ok := c.balances[string(address)]
	if !ok {
		return 0, solana.ErrNoBalance
	}
	return lamports, nil
}

func (c *fakeClient) GetLatestBlockhash() (solana.Blockhash, error) {
	return solana.Blockhash{1, 2, 3}, nil
}

func (c *fakeClient) GetSignatureStatus(solana.Signature, solana.Commitment) (*solana.SignatureStatus, error) {
	c.Lock()
	defer c.Unlock()

	return &solana.SignatureStatus{
		Slot:               100,
		ErrorResult:        c.statusErr,
		ConfirmationStatus: "confirmed",
	}, nil
}

func (c *fakeClient) GetSlot(solana.Commitment) (uint64, error) {
	return 100, nil
}

func (c *fakeClient) GetTokenAccountBalance(address ed25519.PublicKey) (uint64, uint64, error) {
	c.Lock()
	defer c.Unlock()

	amount, ok := c.tokenBalances[string(address)]
	if !ok {
		return 0, 0, solana.ErrNoBalance
	}
	return amount, 100, nil
}

func (c *fakeClient) RequestAirdrop(address ed25519.PublicKey, lamports uint64, _ solana.Commitment) (solana.Signature, error) {
	c.Lock()
	defer c.Unlock()

	c.airdrops = append(c.airdrops, lamports)
	c.balances[string(address)] += lamports
	return solana.Signature{byte(len(c.airdrops))}, nil
}

func (c *fakeClient) SimulateTransaction(txn solana.Transaction, _ solana.Commitment) (*solana.SimulationResult, error) {
	c.Lock()
	defer c.Unlock()

	c.simulated = append(c.simulated, txn)
	return &solana.SimulationResult{
		Slot:          99,
		Err:           c.simulationErr,
		Logs:          []string{"Program log: test"},
		UnitsConsumed: 12345,
	}, nil
}

func (c *fakeClient) SubmitTransaction(txn solana.Transaction, _ solana.Commitment) (solana.Signature, error) {
	c.Lock()
	defer c.Unlock()

	c.submitted = append(c.submitted, txn)
	return txn.Signatures[0], c.submitErr
}
