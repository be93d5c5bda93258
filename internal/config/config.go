package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"github.com/webcash/walletd/internal/core/application"
	"github.com/webcash/walletd/internal/core/ports"
	"github.com/webcash/walletd/internal/infrastructure/db"
	"github.com/webcash/walletd/internal/infrastructure/exchange/webcashd"
	filelocker "github.com/webcash/walletd/internal/infrastructure/locker/file"
	filelog "github.com/webcash/walletd/internal/infrastructure/recoverylog/file"
)

type Config struct {
	Datadir        string
	WalletName     string
	ServerURL      string
	LogLevel       int
	ChangeSweep    bool
	RequestTimeout time.Duration

	repo     ports.RepoManager
	exchange ports.ExchangeService
	rlog     ports.RecoveryLog
	locker   ports.Locker
	wallet   application.WalletService
}

func (c *Config) String() string {
	json, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Sprintf("error while marshalling config JSON: %s", err)
	}
	return string(json)
}

var (
	Datadir        = "DATADIR"
	WalletName     = "WALLET_NAME"
	ServerURL      = "SERVER_URL"
	LogLevel       = "LOG_LEVEL"
	ChangeSweep    = "CHANGE_SWEEP"
	RequestTimeout = "REQUEST_TIMEOUT"

	defaultDatadir        = appDataDir()
	defaultWalletName     = "default_wallet"
	defaultServerURL      = "https://webcash.org"
	defaultLogLevel       = 4
	defaultChangeSweep    = true
	defaultRequestTimeout = webcashd.DefaultTimeout
)

func LoadConfig() (*Config, error) {
	viper.SetEnvPrefix("WEBCASH")
	viper.AutomaticEnv()

	viper.SetDefault(Datadir, defaultDatadir)
	viper.SetDefault(WalletName, defaultWalletName)
	viper.SetDefault(ServerURL, defaultServerURL)
	viper.SetDefault(LogLevel, defaultLogLevel)
	viper.SetDefault(ChangeSweep, defaultChangeSweep)
	viper.SetDefault(RequestTimeout, defaultRequestTimeout)

	if err := initDatadir(); err != nil {
		return nil, fmt.Errorf("error while creating datadir: %s", err)
	}

	return &Config{
		Datadir:        viper.GetString(Datadir),
		WalletName:     viper.GetString(WalletName),
		ServerURL:      viper.GetString(ServerURL),
		LogLevel:       viper.GetInt(LogLevel),
		ChangeSweep:    viper.GetBool(ChangeSweep),
		RequestTimeout: viper.GetDuration(RequestTimeout),
	}, nil
}

// DbPath is the wallet database file. It doubles as the file the process
// lock is taken on.
func (c *Config) DbPath() string {
	return filepath.Join(c.Datadir, c.WalletName+".db")
}

// RecoveryLogPath is the append-only backup of every wallet secret.
func (c *Config) RecoveryLogPath() string {
	return filepath.Join(c.Datadir, c.WalletName+".backup")
}

func (c *Config) Validate() error {
	if c.WalletName == "" {
		return fmt.Errorf("wallet name not set")
	}
	if c.ServerURL == "" {
		return fmt.Errorf("webcash server url not set")
	}
	if err := c.lockerService(); err != nil {
		return err
	}
	if err := c.repoManager(); err != nil {
		return err
	}
	if err := c.recoveryLogService(); err != nil {
		return err
	}
	if err := c.exchangeService(); err != nil {
		return err
	}
	return nil
}

// WalletService wires the wallet engine on first use. Validate must have
// run first. The returned service owns the process lock and the store;
// closing it releases both.
func (c *Config) WalletService() (application.WalletService, error) {
	if c.wallet == nil {
		svc, err := application.NewWalletService(
			c.repo, c.exchange, c.rlog, c.locker,
			application.Options{ChangeSweep: c.ChangeSweep},
		)
		if err != nil {
			return nil, err
		}
		c.wallet = svc
	}
	return c.wallet, nil
}

// lockerService must run before repoManager: the lock on the database
// file is what makes opening it safe.
func (c *Config) lockerService() error {
	locker := filelocker.NewService(c.DbPath())
	if err := locker.TryLock(); err != nil {
		return err
	}
	c.locker = locker
	return nil
}

func (c *Config) repoManager() error {
	svc, err := db.NewService(c.DbPath())
	if err != nil {
		return err
	}
	c.repo = svc
	return nil
}

func (c *Config) recoveryLogService() error {
	svc, err := filelog.NewService(c.RecoveryLogPath())
	if err != nil {
		return err
	}
	c.rlog = svc
	return nil
}

func (c *Config) exchangeService() error {
	svc, err := webcashd.NewService(c.ServerURL, c.RequestTimeout)
	if err != nil {
		return err
	}
	c.exchange = svc
	return nil
}

func initDatadir() error {
	datadir := viper.GetString(Datadir)
	return makeDirectoryIfNotExists(datadir)
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}

func appDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".webcash"
	}
	return filepath.Join(home, ".webcash")
}
