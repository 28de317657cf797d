package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/nspcc-dev/splitter-contract/deploy"
	"go.uber.org/zap"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	walletPath := flag.String("wallet", "", "Path to the NEP-6 wallet used for signing")
	walletPassword := flag.String("password", "", "Password of the wallet account")
	ownerAddr := flag.String("owner", "", "Address of the contract owner (defaults to the signing account)")
	recipientList := flag.String("recipients", "", "Comma-separated list of recipient addresses")
	weightList := flag.String("weights", "", "Comma-separated list of recipient weights")
	duration := flag.Duration("duration", 365*24*time.Hour, "Configuration timelock duration")
	contractDir := flag.String("contract", "contracts/splitter", "Path to the contract source directory")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *walletPath == "":
		log.Fatal("missing wallet path")
	case *recipientList == "":
		log.Fatal("missing recipient list")
	case *weightList == "":
		log.Fatal("missing weight list")
	}

	err := run(*neoRPCEndpoint, *walletPath, *walletPassword, *ownerAddr,
		*recipientList, *weightList, *duration, *contractDir)
	if err != nil {
		log.Fatal(err)
	}
}

func run(endpoint, walletPath, password, ownerAddr, recipientList, weightList string,
	duration time.Duration, contractDir string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	recipients, err := parseAddresses(recipientList)
	if err != nil {
		return fmt.Errorf("parse recipients: %w", err)
	}
	weights, err := parseWeights(weightList)
	if err != nil {
		return fmt.Errorf("parse weights: %w", err)
	}

	w, err := wallet.NewWalletFromFile(walletPath)
	if err != nil {
		return fmt.Errorf("open wallet: %w", err)
	}
	acc := w.GetAccount(w.GetChangeAddress())
	if acc == nil {
		return fmt.Errorf("wallet %s has no usable account", walletPath)
	}
	if err := acc.Decrypt(password, w.Scrypt); err != nil {
		return fmt.Errorf("unlock wallet account: %w", err)
	}

	owner := acc.ScriptHash()
	if ownerAddr != "" {
		owner, err = address.StringToUint160(ownerAddr)
		if err != nil {
			return fmt.Errorf("parse owner address: %w", err)
		}
	}

	ne, m, err := deploy.CompileSource(contractDir)
	if err != nil {
		return fmt.Errorf("compile contract from %s: %w", contractDir, err)
	}

	c, err := rpcclient.New(context.Background(), endpoint, rpcclient.Options{})
	if err != nil {
		return fmt.Errorf("init Neo RPC client: %w", err)
	}
	defer c.Close()

	h, err := deploy.Deploy(deploy.Prm{
		Logger:       logger,
		Blockchain:   c,
		LocalAccount: acc,
		NEF:          ne,
		Manifest:     m,
		Owner:        owner,
		Recipients:   recipients,
		Weights:      weights,
		Duration:     duration,
	})
	if err != nil {
		return err
	}

	log.Printf("Splitter contract is deployed at %s\n", address.Uint160ToString(h))
	return nil
}

func parseAddresses(list string) ([]util.Uint160, error) {
	parts := strings.Split(list, ",")
	res := make([]util.Uint160, len(parts))
	for i := range parts {
		h, err := address.StringToUint160(strings.TrimSpace(parts[i]))
		if err != nil {
			return nil, fmt.Errorf("address #%d: %w", i, err)
		}
		res[i] = h
	}
	return res, nil
}

func parseWeights(list string) ([]int64, error) {
	parts := strings.Split(list, ",")
	res := make([]int64, len(parts))
	for i := range parts {
		w, err := strconv.ParseInt(strings.TrimSpace(parts[i]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("weight #%d: %w", i, err)
		}
		if w < 0 {
			return nil, fmt.Errorf("weight #%d: negative value", i)
		}
		res[i] = w
	}
	return res, nil
}
