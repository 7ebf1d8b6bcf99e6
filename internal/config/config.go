package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment key, so --rpc reads CLANKER_RPC.
const EnvPrefix = "CLANKER"

// Chain holds the settings every on-chain command shares.
type Chain struct {
	RPCURL     string
	ChainID    uint64
	PrivateKey string
	// Overrides replaces address book entries, keyed like "presale".
	Overrides map[string]string
	LogLevel  string
	Output    string
	Timeout   time.Duration
}

// LoadChain merges .env files, config file, environment variables, and
// flags into Chain.
func LoadChain(cfgFile string, flags *pflag.FlagSet) (Chain, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"chain-id": uint64(8453),
		"output":   "json",
		"timeout":  2 * time.Minute,
	})
	if err != nil {
		return Chain{}, err
	}
	cfg := Chain{
		RPCURL:     v.GetString("rpc"),
		ChainID:    v.GetUint64("chain-id"),
		PrivateKey: v.GetString("private-key"),
		Overrides:  getStringMap(v, "contracts"),
		LogLevel:   v.GetString("log-level"),
		Output:     v.GetString("output"),
		Timeout:    v.GetDuration("timeout"),
	}
	if cfg.Output != "json" && cfg.Output != "yaml" {
		return Chain{}, fmt.Errorf("output must be json or yaml, got %q", cfg.Output)
	}
	return cfg, nil
}

// newViper builds a viper instance with the shared env, flag and config
// file wiring. .env and .env.local are loaded into the process first.
func newViper(cfgFile string, flags *pflag.FlagSet, defaults map[string]interface{}) (*viper.Viper, error) {
	_ = godotenv.Load()
	_ = godotenv.Overload(".env.local")

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("log-level", "info")
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("clanker")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}
	return v, nil
}

func getStringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case []string:
		return cleanStrings(typed)
	case string:
		return splitAndClean(typed)
	case []interface{}:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return cleanStrings(items)
	default:
		return nil
	}
}

func getStringMap(v *viper.Viper, key string) map[string]string {
	if !v.IsSet(key) {
		return map[string]string{}
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case map[string]string:
		return typed
	case map[string]interface{}:
		out := make(map[string]string, len(typed))
		for k, v := range typed {
			out[k] = fmt.Sprintf("%v", v)
		}
		return out
	case string:
		return parseStringMap(typed)
	case []string:
		return parseStringMap(strings.Join(typed, ","))
	default:
		return map[string]string{}
	}
}

func parseStringMap(input string) map[string]string {
	out := make(map[string]string)
	if strings.TrimSpace(input) == "" {
		return out
	}
	for _, pair := range strings.Split(input, ",") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}
	return out
}

func splitAndClean(input string) []string {
	if input == "" {
		return nil
	}
	return cleanStrings(strings.Split(input, ","))
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
