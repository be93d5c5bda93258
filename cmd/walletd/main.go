package main

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"github.com/webcash/walletd/internal/config"
	"github.com/webcash/walletd/internal/core/application"
	"github.com/webcash/walletd/pkg/webcash"
)

//nolint:all
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	infoCommand = cli.Command{
		Name:  "info",
		Usage: "Show wallet balance, unspent outputs and file locations",
		Action: func(ctx *cli.Context) error {
			return info(ctx)
		},
	}

	balanceCommand = cli.Command{
		Name:  "balance",
		Usage: "Show the total unspent balance of the wallet",
		Action: func(ctx *cli.Context) error {
			return balance(ctx)
		},
	}

	importCommand = cli.Command{
		Name:      "import",
		Usage:     "Import a webcash token and sweep it into a fresh secret",
		ArgsUsage: "<token>",
		Flags:     []cli.Flag{&mineFlag},
		Action: func(ctx *cli.Context) error {
			return insert(ctx)
		},
	}

	acceptTermsCommand = cli.Command{
		Name:  "accept-terms",
		Usage: "Record acceptance of the webcash server's terms of service",
		Flags: []cli.Flag{&termsFlag},
		Action: func(ctx *cli.Context) error {
			return acceptTerms(ctx)
		},
	}

	mineFlag = cli.BoolFlag{
		Name:  "mine",
		Usage: "mark the imported token as produced by this wallet",
	}
	termsFlag = cli.StringFlag{
		Name:     "terms",
		Usage:    "text of the terms of service being accepted",
		Required: true,
	}
)

func main() {
	app := cli.NewApp()

	app.Version = version
	app.Name = "walletd"
	app.Usage = "webcash wallet command line interface"
	app.Commands = append(
		app.Commands,
		&infoCommand,
		&balanceCommand,
		&importCommand,
		&acceptTermsCommand,
	)

	if err := app.Run(os.Args); err != nil {
		fmt.Println(fmt.Errorf("error: %v", err))
		os.Exit(1)
	}
}

// openWallet takes the process lock and wires the whole stack. Every
// command opens the wallet for itself and closes it on the way out.
func openWallet() (application.WalletService, *config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid config: %v", err)
	}

	log.SetLevel(log.Level(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("error while opening wallet: %v", err)
	}

	svc, err := cfg.WalletService()
	if err != nil {
		return nil, nil, err
	}
	return svc, cfg, nil
}

func info(ctx *cli.Context) error {
	svc, cfg, err := openWallet()
	if err != nil {
		return err
	}
	defer svc.Close()

	balance, err := svc.Balance(ctx.Context)
	if err != nil {
		return err
	}
	unspent, err := svc.ListUnspent(ctx.Context)
	if err != nil {
		return err
	}

	return printJSON(map[string]interface{}{
		"wallet_db":     cfg.DbPath(),
		"recovery_log":  cfg.RecoveryLogPath(),
		"server_url":    cfg.ServerURL,
		"balance":       balance.String(),
		"unspent_count": len(unspent),
	})
}

func balance(ctx *cli.Context) error {
	svc, _, err := openWallet()
	if err != nil {
		return err
	}
	defer svc.Close()

	bal, err := svc.Balance(ctx.Context)
	if err != nil {
		return err
	}

	return printJSON(map[string]interface{}{"balance": bal.String()})
}

func insert(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("missing token argument")
	}
	token, err := webcash.ParseSecretWebcash(ctx.Args().First())
	if err != nil {
		return err
	}

	svc, _, err := openWallet()
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.Insert(ctx.Context, token, ctx.Bool("mine")); err != nil {
		return err
	}

	bal, err := svc.Balance(ctx.Context)
	if err != nil {
		return err
	}
	return printJSON(map[string]interface{}{
		"inserted": token.Amount.String(),
		"balance":  bal.String(),
	})
}

func acceptTerms(ctx *cli.Context) error {
	svc, _, err := openWallet()
	if err != nil {
		return err
	}
	defer svc.Close()

	terms := ctx.String("terms")
	if err := svc.AcceptTerms(ctx.Context, terms); err != nil {
		return err
	}
	return printJSON(map[string]interface{}{"accepted": true})
}

func printJSON(resp interface{}) error {
	jsonBytes, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		return err
	}
	fmt.Println(string(jsonBytes))
	return nil
}
