package fees

import (
	"math/big"
	"reflect"
	"testing"

	"clankerSDK/internal/contracts"
	"clankerSDK/internal/validate"
)

func baseChain(t *testing.T) contracts.Chain {
	t.Helper()
	chain, err := contracts.ChainByID(contracts.BaseChainID)
	if err != nil {
		t.Fatalf("chain by id: %v", err)
	}
	return chain
}

func TestStaticRoundTrip(t *testing.T) {
	chain := baseChain(t)
	cfg := Static{ClankerFeeBps: 250, PairedFeeBps: 75}

	hook, data, err := cfg.Encode(chain)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if hook != chain.StaticFeeHook {
		t.Fatalf("unexpected hook %s", hook.Hex())
	}

	values, err := contracts.StaticFeePoolData.Unpack(data)
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if values[0].(*big.Int).Int64() != 25000 {
		t.Fatalf("clanker fee not scaled to hundredths of a bip: %v", values[0])
	}

	decoded, err := Decode(hook, data, chain)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(decoded, cfg) {
		t.Fatalf("round trip mismatch: %+v vs %+v", decoded, cfg)
	}
}

func TestDynamicRoundTrip(t *testing.T) {
	chain := baseChain(t)
	cfg := DefaultDynamic()
	cfg.ResetTickFilter = -400

	hook, data, err := cfg.Encode(chain)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if hook != chain.DynamicFeeHook {
		t.Fatalf("unexpected hook %s", hook.Hex())
	}
	decoded, err := Decode(hook, data, chain)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(decoded, cfg) {
		t.Fatalf("round trip mismatch: %+v vs %+v", decoded, cfg)
	}
}

func TestDecodeUnknownHook(t *testing.T) {
	chain := baseChain(t)
	_, data, err := DefaultStatic().Encode(chain)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := Decode(chain.FactoryV4, data, chain); err == nil {
		t.Fatalf("expected error for unknown hook")
	}
}

func TestValidate(t *testing.T) {
	var errs validate.Errors
	Static{ClankerFeeBps: 2001, PairedFeeBps: 100}.Validate(&errs)
	if !errs.Has("fees.clankerFee") || errs.Has("fees.pairedFee") {
		t.Fatalf("unexpected static violations: %+v", errs.Fields)
	}

	errs = validate.Errors{}
	Dynamic{BaseFeeBps: 600, MaxFeeBps: 500}.Validate(&errs)
	if !errs.Has("fees.baseFee") {
		t.Fatalf("expected base > max violation: %+v", errs.Fields)
	}

	errs = validate.Errors{}
	DefaultDynamic().Validate(&errs)
	DefaultStatic().Validate(&errs)
	if errs.Err() != nil {
		t.Fatalf("defaults should validate: %v", errs.Err())
	}
}

func TestDynamicRejectsUnencodableValues(t *testing.T) {
	cases := []struct {
		name  string
		mut   func(*Dynamic)
		field string
	}{
		{"reset tick above int24", func(d *Dynamic) { d.ResetTickFilter = 1 << 24 }, "fees.resetTickFilter"},
		{"reset tick below int24", func(d *Dynamic) { d.ResetTickFilter = -1<<23 - 1 }, "fees.resetTickFilter"},
		{"decay above 100%", func(d *Dynamic) { d.DecayFilterBps = 10001 }, "fees.decayFilterBps"},
		{"decay above uint24", func(d *Dynamic) { d.DecayFilterBps = 1 << 25 }, "fees.decayFilterBps"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := DefaultDynamic()
			tc.mut(&d)
			var errs validate.Errors
			d.Validate(&errs)
			if !errs.Has(tc.field) {
				t.Fatalf("expected %s violation, got %+v", tc.field, errs.Fields)
			}
		})
	}

	edge := DefaultDynamic()
	edge.ResetTickFilter = -1 << 23
	edge.DecayFilterBps = 10000
	var errs validate.Errors
	edge.Validate(&errs)
	if errs.Err() != nil {
		t.Fatalf("bounds should validate: %v", errs.Err())
	}
}
