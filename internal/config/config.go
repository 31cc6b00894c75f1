package config

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/hdvault/hdvault/pkg/chain"
)

const (
	// DatadirKey is the local data directory holding the vault's record store
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// NetworkKey selects the blockchain new roots are created for
	NetworkKey = "NETWORK"
	// AddressTypeKey selects the address encoding new roots are created with
	AddressTypeKey = "ADDRESS_TYPE"
)

var vip *viper.Viper

var networkByName = map[string]chain.BlockchainID{
	"bitcoin":          chain.ChainBitcoin,
	"testnet":          chain.ChainTestnetBitcoin,
	"ethereum":         chain.ChainEthereum,
	"ethereum-classic": chain.ChainEthereumClassic,
	"kovan":            chain.ChainKovan,
}

var addressTypeByName = map[string]chain.AddressType{
	"p2wpkh":         chain.AddressP2WPKH,
	"p2wsh":          chain.AddressP2WSH,
	"p2pkh":          chain.AddressP2PKH,
	"p2sh":           chain.AddressP2SH,
	"p2wpkh-in-p2sh": chain.AddressP2WPKHInP2SH,
	"p2wsh-in-p2sh":  chain.AddressP2WSHInP2SH,
	"ethereum":       chain.AddressEthereum,
}

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("HDVAULT")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, btcutil.AppDataDir("hdvault", false))
	vip.SetDefault(LogLevelKey, int(log.InfoLevel))
	vip.SetDefault(NetworkKey, "bitcoin")
	vip.SetDefault(AddressTypeKey, "p2wpkh")

	log.SetLevel(log.Level(vip.GetInt(LogLevelKey)))
}

// GetString reads a config value as string
func GetString(key string) string {
	return vip.GetString(key)
}

// GetInt reads a config value as int
func GetInt(key string) int {
	return vip.GetInt(key)
}

// Set overrides a config value, used by tests and CLI flags
func Set(key string, val interface{}) {
	vip.Set(key, val)
}

// GetNetwork resolves the configured network name to a BlockchainID
func GetNetwork() (chain.BlockchainID, error) {
	name := vip.GetString(NetworkKey)
	network, ok := networkByName[name]
	if !ok {
		return chain.ChainUnspecified, fmt.Errorf("unknown network %q", name)
	}
	return network, nil
}

// GetAddressType resolves the configured address type name
func GetAddressType() (chain.AddressType, error) {
	name := vip.GetString(AddressTypeKey)
	addrType, ok := addressTypeByName[name]
	if !ok {
		return chain.AddressUnspecified, fmt.Errorf("unknown address type %q", name)
	}
	return addrType, nil
}
