package claims

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"clankerSDK/internal/chain"
	"clankerSDK/internal/contracts"
)

// ClaimTeamFees sends the factory's accrued team fees of token to the team
// fee recipient.
func (c *Client) ClaimTeamFees(token common.Address) (*chain.CallDescriptor, error) {
	return c.call(c.chain.FactoryV4, contracts.FactoryV4ABI, "claimTeamFees", token)
}

// SetAdmin enables or disables a factory admin. v3 targets the v3.1 factory.
func (c *Client) SetAdmin(admin common.Address, enabled, v3 bool) (*chain.CallDescriptor, error) {
	if admin == (common.Address{}) {
		return nil, fmt.Errorf("admin is required")
	}
	to, load := c.factory(v3)
	return c.call(to, load, "setAdmin", admin, enabled)
}

func (c *Client) SetDeprecated(deprecated, v3 bool) (*chain.CallDescriptor, error) {
	to, load := c.factory(v3)
	return c.call(to, load, "setDeprecated", deprecated)
}

func (c *Client) SetHook(hook common.Address, enabled bool) (*chain.CallDescriptor, error) {
	if hook == (common.Address{}) {
		return nil, fmt.Errorf("hook is required")
	}
	return c.call(c.chain.FactoryV4, contracts.FactoryV4ABI, "setHook", hook, enabled)
}

// SetLocker enables locker for pools using hook.
func (c *Client) SetLocker(locker, hook common.Address, enabled bool) (*chain.CallDescriptor, error) {
	if locker == (common.Address{}) || hook == (common.Address{}) {
		return nil, fmt.Errorf("locker and hook are required")
	}
	return c.call(c.chain.FactoryV4, contracts.FactoryV4ABI, "setLocker", locker, hook, enabled)
}

func (c *Client) SetExtension(extension common.Address, enabled bool) (*chain.CallDescriptor, error) {
	if extension == (common.Address{}) {
		return nil, fmt.Errorf("extension is required")
	}
	return c.call(c.chain.FactoryV4, contracts.FactoryV4ABI, "setExtension", extension, enabled)
}

func (c *Client) SetMevModule(module common.Address, enabled bool) (*chain.CallDescriptor, error) {
	if module == (common.Address{}) {
		return nil, fmt.Errorf("mev module is required")
	}
	return c.call(c.chain.FactoryV4, contracts.FactoryV4ABI, "setMevModule", module, enabled)
}

func (c *Client) SetTeamFeeRecipient(recipient common.Address) (*chain.CallDescriptor, error) {
	if recipient == (common.Address{}) {
		return nil, fmt.Errorf("recipient is required")
	}
	return c.call(c.chain.FactoryV4, contracts.FactoryV4ABI, "setTeamFeeRecipient", recipient)
}

// DeploymentInfo reads the hook, locker and extensions a v4 token was
// deployed with.
func (c *Client) DeploymentInfo(ctx context.Context, token common.Address) (contracts.TokenDeploymentInfo, error) {
	call, err := c.call(c.chain.FactoryV4, contracts.FactoryV4ABI, "tokenDeploymentInfo", token)
	if err != nil {
		return contracts.TokenDeploymentInfo{}, err
	}
	if c.caller == nil {
		return contracts.TokenDeploymentInfo{}, fmt.Errorf("tokenDeploymentInfo: no caller configured")
	}
	values, err := chain.Read(ctx, c.caller, call)
	if err != nil {
		return contracts.TokenDeploymentInfo{}, err
	}
	info := abi.ConvertType(values[0], new(contracts.TokenDeploymentInfo)).(*contracts.TokenDeploymentInfo)
	if info.Token == (common.Address{}) {
		return contracts.TokenDeploymentInfo{}, fmt.Errorf("token %s was not deployed by factory %s", token.Hex(), c.chain.FactoryV4.Hex())
	}
	return *info, nil
}

// DeploymentInfoV3 reads the LP position and locker of a v3.1 token.
func (c *Client) DeploymentInfoV3(ctx context.Context, token common.Address) (contracts.DeploymentInfoV3, error) {
	var info contracts.DeploymentInfoV3
	call, err := c.call(c.chain.FactoryV3, contracts.FactoryV3ABI, "deploymentInfoForToken", token)
	if err != nil {
		return info, err
	}
	if c.caller == nil {
		return info, fmt.Errorf("deploymentInfoForToken: no caller configured")
	}
	values, err := chain.Read(ctx, c.caller, call)
	if err != nil {
		return info, err
	}
	if err := call.ABI.Methods[call.Method].Outputs.Copy(&info, values); err != nil {
		return info, fmt.Errorf("decode deploymentInfoForToken: %w", err)
	}
	if info.Token == (common.Address{}) {
		return contracts.DeploymentInfoV3{}, fmt.Errorf("token %s was not deployed by factory %s", token.Hex(), c.chain.FactoryV3.Hex())
	}
	return info, nil
}

// UpdateCreatorRewardRecipientV3 moves the creator share of a v3.1 position.
func (c *Client) UpdateCreatorRewardRecipientV3(positionID *big.Int, recipient common.Address) (*chain.CallDescriptor, error) {
	return c.updateRecipientV3("updateCreatorRewardRecipient", positionID, recipient)
}

// UpdateInterfaceRewardRecipientV3 moves the interface share of a v3.1 position.
func (c *Client) UpdateInterfaceRewardRecipientV3(positionID *big.Int, recipient common.Address) (*chain.CallDescriptor, error) {
	return c.updateRecipientV3("updateInterfaceRewardRecipient", positionID, recipient)
}

func (c *Client) updateRecipientV3(method string, positionID *big.Int, recipient common.Address) (*chain.CallDescriptor, error) {
	if positionID == nil || positionID.Sign() < 0 {
		return nil, fmt.Errorf("%s: position id is required", method)
	}
	if recipient == (common.Address{}) {
		return nil, fmt.Errorf("%s: recipient is required", method)
	}
	return c.call(c.chain.LockerV3, contracts.LockerV3ABI, method, positionID, recipient)
}

func (c *Client) factory(v3 bool) (common.Address, func() (abi.ABI, error)) {
	if v3 {
		return c.chain.FactoryV3, contracts.FactoryV3ABI
	}
	return c.chain.FactoryV4, contracts.FactoryV4ABI
}
