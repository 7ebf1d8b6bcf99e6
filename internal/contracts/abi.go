package contracts

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

type lazyABI struct {
	json   string
	once   sync.Once
	parsed abi.ABI
	err    error
}

func (l *lazyABI) get() (abi.ABI, error) {
	l.once.Do(func() {
		l.parsed, l.err = abi.JSON(strings.NewReader(l.json))
	})
	return l.parsed, l.err
}

var (
	factoryV3ABI   = &lazyABI{json: factoryV3ABIJSON}
	factoryV4ABI   = &lazyABI{json: factoryV4ABIJSON}
	lockerV3ABI    = &lazyABI{json: lockerV3ABIJSON}
	lockerV4ABI    = &lazyABI{json: lockerV4ABIJSON}
	feeLockerABI   = &lazyABI{json: feeLockerABIJSON}
	vaultABI       = &lazyABI{json: vaultABIJSON}
	airdropABI     = &lazyABI{json: airdropABIJSON}
	presaleABI     = &lazyABI{json: presaleABIJSON}
	legacyABI      = &lazyABI{json: legacyLockerABIJSON}
	safeSpenderABI = &lazyABI{json: safeSpenderABIJSON}
	erc20ABI       = &lazyABI{json: erc20ABIJSON}
)

// FactoryV3ABI returns the parsed Clanker v3.1 factory ABI.
func FactoryV3ABI() (abi.ABI, error) { return factoryV3ABI.get() }

// FactoryV4ABI returns the parsed Clanker v4 factory ABI.
func FactoryV4ABI() (abi.ABI, error) { return factoryV4ABI.get() }

// LockerV3ABI returns the parsed v3.1 LP locker ABI.
func LockerV3ABI() (abi.ABI, error) { return lockerV3ABI.get() }

// LockerV4ABI returns the parsed v4 LP locker ABI.
func LockerV4ABI() (abi.ABI, error) { return lockerV4ABI.get() }

// FeeLockerABI returns the parsed v4 fee locker ABI.
func FeeLockerABI() (abi.ABI, error) { return feeLockerABI.get() }

// VaultABI returns the parsed v4 vault extension ABI.
func VaultABI() (abi.ABI, error) { return vaultABI.get() }

// AirdropABI returns the parsed v4 airdrop extension ABI.
func AirdropABI() (abi.ABI, error) { return airdropABI.get() }

// PresaleABI returns the parsed v4 presale extension ABI.
func PresaleABI() (abi.ABI, error) { return presaleABI.get() }

// LegacyLockerABI returns the parsed ABI of the pre-v3 LP locker.
func LegacyLockerABI() (abi.ABI, error) { return legacyABI.get() }

// SafeSpenderABI returns the parsed ABI of the legacy fee-claim Safe spender.
func SafeSpenderABI() (abi.ABI, error) { return safeSpenderABI.get() }

// ERC20ABI returns the parsed ERC20 subset used for balances and metadata.
func ERC20ABI() (abi.ABI, error) { return erc20ABI.get() }
