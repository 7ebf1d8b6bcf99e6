package contracts

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Argument layouts of the opaque bytes payloads the contracts abi.decode.
var (
	// TokenConstructorArgs are the ClankerToken constructor parameters.
	TokenConstructorArgs = arguments(
		arg("name_", "string", nil),
		arg("symbol_", "string", nil),
		arg("maxSupply_", "uint256", nil),
		arg("admin_", "address", nil),
		arg("image_", "string", nil),
		arg("metadata_", "string", nil),
		arg("context_", "string", nil),
		arg("originatingChainId_", "uint256", nil),
	)

	// StaticFeePoolData is the poolData layout of the static fee hook.
	StaticFeePoolData = arguments(
		arg("clankerFee", "uint24", nil),
		arg("pairedFee", "uint24", nil),
	)

	// DynamicFeePoolData is the poolData layout of the dynamic fee hook.
	DynamicFeePoolData = arguments(
		arg("baseFee", "uint24", nil),
		arg("maxLpFee", "uint24", nil),
		arg("referenceTickFilterPeriod", "uint256", nil),
		arg("resetPeriod", "uint256", nil),
		arg("resetTickFilter", "int24", nil),
		arg("feeControlNumerator", "uint256", nil),
		arg("decayFilterBps", "uint24", nil),
	)

	// LockerData carries the per-recipient fee preference.
	LockerData = arguments(
		arg("lockerInstantiation", "tuple", []abi.ArgumentMarshaling{
			{Name: "feePreference", Type: "uint8[]"},
		}),
	)

	// VaultExtensionData is the vault extension payload.
	VaultExtensionData = arguments(
		arg("admin", "address", nil),
		arg("lockupDuration", "uint256", nil),
		arg("vestingDuration", "uint256", nil),
	)

	// AirdropExtensionData is the airdrop extension payload.
	AirdropExtensionData = arguments(
		arg("admin", "address", nil),
		arg("merkleRoot", "bytes32", nil),
		arg("lockupDuration", "uint256", nil),
		arg("vestingDuration", "uint256", nil),
	)

	// DevBuyExtensionData is the dev-buy extension payload.
	DevBuyExtensionData = arguments(
		arg("pairedTokenPoolKey", "tuple", []abi.ArgumentMarshaling{
			{Name: "currency0", Type: "address"},
			{Name: "currency1", Type: "address"},
			{Name: "fee", Type: "uint24"},
			{Name: "tickSpacing", Type: "int24"},
			{Name: "hooks", Type: "address"},
		}),
		arg("pairedTokenAmountOutMinimum", "uint128", nil),
		arg("recipient", "address", nil),
	)
)

// LockerInstantiation is the tuple packed into LockerData.
type LockerInstantiation struct {
	FeePreference []uint8
}

type argSpec struct {
	name       string
	typ        string
	components []abi.ArgumentMarshaling
}

func arg(name, typ string, components []abi.ArgumentMarshaling) argSpec {
	return argSpec{name: name, typ: typ, components: components}
}

func arguments(specs ...argSpec) abi.Arguments {
	args := make(abi.Arguments, 0, len(specs))
	for _, spec := range specs {
		typ, err := abi.NewType(spec.typ, "", spec.components)
		if err != nil {
			panic(fmt.Sprintf("abi type %s for %s: %v", spec.typ, spec.name, err))
		}
		args = append(args, abi.Argument{Name: spec.name, Type: typ})
	}
	return args
}
