package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/webcash/walletd/internal/core/domain"
	"github.com/webcash/walletd/internal/core/ports"
	"github.com/webcash/walletd/pkg/hdkeys"
	"github.com/webcash/walletd/pkg/webcash"
)

// WalletService is the single owner of the wallet's store, recovery log
// and process lock. All mutating operations serialize behind one mutex;
// across processes the advisory file lock held for the wallet's lifetime
// enforces exclusivity.
type WalletService interface {
	ReserveSecret(ctx context.Context, now time.Time, mine, sweep bool) (*domain.Secret, error)
	Insert(ctx context.Context, token webcash.SecretWebcash, mine bool) error
	ReplaceWebcash(
		ctx context.Context, inputs []ReplacementInput, outputs []ReplacementOutput,
	) ([]CreatedOutput, error)
	HaveAcceptedTerms(ctx context.Context) (bool, error)
	AreTermsAccepted(ctx context.Context, terms string) (bool, error)
	AcceptTerms(ctx context.Context, terms string) error
	Balance(ctx context.Context) (webcash.Amount, error)
	ListUnspent(ctx context.Context) ([]domain.Output, error)
	Close()
}

// Options tune wallet behavior.
type Options struct {
	// ChangeSweep is the sweep flag used when reserving change secrets
	// during an import. True selects the mining chain for change, which
	// keeps imports compatible with wallets that use random mining
	// secrets; false selects the proper change chain.
	ChangeSweep bool
}

type service struct {
	mtx sync.Mutex

	repo        ports.RepoManager
	exchange    ports.ExchangeService
	recoveryLog ports.RecoveryLog
	locker      ports.Locker

	root   *hdkeys.Root
	rootID int64

	changeSweep bool
}

// NewWalletService loads or creates the wallet master secret and returns
// the ready-to-use wallet engine. The caller must already hold the
// process lock; the service owns its release from here on. The master
// secret is written to the recovery log before it is trusted to the
// database, and a wallet without a recovery copy of its master secret
// refuses to proceed.
func NewWalletService(
	repo ports.RepoManager,
	exchange ports.ExchangeService,
	recoveryLog ports.RecoveryLog,
	locker ports.Locker,
	opts Options,
) (WalletService, error) {
	ctx := context.Background()

	count, err := repo.HD().CountRoots(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count master secrets: %w", err)
	}

	var root *hdkeys.Root
	var rootID int64
	switch count {
	case 0:
		log.Info("generating master secret for wallet")
		root, err = hdkeys.NewRandomRoot()
		if err != nil {
			return nil, err
		}
		now := time.Now().Unix()
		extra := fmt.Sprintf("version=%d", hdkeys.RootVersion)
		if err := recoveryLog.Append(now, "hdroot", root.Hex(), extra); err != nil {
			root.Zero()
			return nil, fmt.Errorf(
				"unable to save master secret to wallet recovery file: %w", err,
			)
		}
		if err := repo.HD().CreateRoot(ctx, domain.HDRoot{
			Timestamp: now,
			Version:   hdkeys.RootVersion,
			Secret:    root.Bytes(),
		}); err != nil {
			root.Zero()
			return nil, fmt.Errorf("unable to insert master secret into database: %w", err)
		}
		stored, err := repo.HD().GetRoot(ctx)
		if err != nil {
			root.Zero()
			return nil, err
		}
		rootID = stored.ID
	case 1:
		log.Info("loading master secret from wallet")
		stored, err := repo.HD().GetRoot(ctx)
		if err != nil {
			return nil, err
		}
		if !hdkeys.IsKnownRootVersion(stored.Version) {
			return nil, fmt.Errorf("%w: %d", domain.ErrUnknownRootVersion, stored.Version)
		}
		root, err = hdkeys.RootFromBytes(stored.Secret)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrBadRootLength, err)
		}
		rootID = stored.ID
	default:
		return nil, domain.ErrMultipleRoots
	}

	return &service{
		repo:        repo,
		exchange:    exchange,
		recoveryLog: recoveryLog,
		locker:      locker,
		root:        root,
		rootID:      rootID,
		changeSweep: opts.ChangeSweep,
	}, nil
}

// ReserveSecret allocates the next unused secret on the (mine, sweep)
// chain. Secrets are never reused: the chain depth only ever moves
// forward, and the whole allocation commits in one transaction.
func (s *service) ReserveSecret(
	ctx context.Context, now time.Time, mine, sweep bool,
) (*domain.Secret, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.reserveSecret(ctx, now, hdkeys.ChainSelector{Mine: mine, Sweep: sweep})
}

func (s *service) reserveSecret(
	ctx context.Context, now time.Time, sel hdkeys.ChainSelector,
) (*domain.Secret, error) {
	chain, err := s.repo.HD().GetChain(ctx, s.rootID, 0, sel.Mine, sel.Sweep)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s chain: %w", sel.Category(), err)
	}

	depth := chain.MaxDepth
	value := hdkeys.Derive(s.root, sel, depth)

	// The derived secret is recoverable from the master secret, but a
	// recovery-log copy lets an operator salvage it without re-running
	// the derivation. Failure here does not block the database write.
	if err := s.recoveryLog.Append(now.Unix(), sel.Category(), value, ""); err != nil {
		log.WithError(err).Errorf(
			"unable to write reserved key to wallet recovery file: %q. "+
				"BACK UP THIS KEY NOW TO AVOID DATA LOSS", value,
		)
	}

	secret := domain.Secret{
		Timestamp: now.Unix(),
		Value:     value,
		Mine:      sel.Mine,
		Sweep:     sel.Sweep,
	}
	id, err := s.repo.HD().ReserveNext(ctx, chain.ID, depth, secret)
	if err != nil {
		return nil, fmt.Errorf("unable to insert secret into database: %w", err)
	}
	secret.ID = id
	return &secret, nil
}

// Insert imports a received token and immediately sweeps its value into a
// fresh secret never revealed externally. Imported secrets are always
// treated as exposed. If the sweep fails the imported funds stay recorded
// in the wallet and the operation can be retried.
func (s *service) Insert(ctx context.Context, token webcash.SecretWebcash, mine bool) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	now := time.Now()

	secretID, err := s.addSecret(ctx, now, token, mine)
	if err != nil {
		return fmt.Errorf("error adding secret to wallet: %w", err)
	}

	pub := token.Public()
	output := domain.Output{
		Timestamp: now.Unix(),
		Hash:      pub.Hash,
		SecretID:  secretID,
		Amount:    token.Amount,
	}
	outputID, err := s.repo.Outputs().Add(ctx, output)
	if err != nil {
		return fmt.Errorf("error adding output to wallet: %w", err)
	}
	output.ID = outputID

	change, err := s.reserveSecret(
		ctx, now, hdkeys.ChainSelector{Mine: true, Sweep: s.changeSweep},
	)
	if err != nil {
		return err
	}

	imported := domain.Secret{
		ID:        secretID,
		Timestamp: now.Unix(),
		Value:     token.Secret,
		Mine:      mine,
		Sweep:     true,
	}
	created, err := s.replaceWebcash(ctx, now,
		[]ReplacementInput{{Output: output, Secret: imported}},
		[]ReplacementOutput{{Secret: *change, Amount: token.Amount}},
	)
	if err != nil {
		return fmt.Errorf(
			"replacement failed, imported secret remains recorded in the wallet: %w", err,
		)
	}
	if len(created) != 1 {
		return fmt.Errorf(
			"expected one replacement output record, got %d; "+
				"imported secret remains recorded in the wallet", len(created),
		)
	}
	return nil
}

// addSecret writes the imported secret to the recovery log, then records
// it in the store with sweep=true. A failed recovery-log write is
// reported loudly but does not block the database write.
func (s *service) addSecret(
	ctx context.Context, now time.Time, token webcash.SecretWebcash, mine bool,
) (int64, error) {
	sel := hdkeys.ChainSelector{Mine: mine, Sweep: true}
	if err := s.recoveryLog.Append(now.Unix(), sel.Category(), token.String(), ""); err != nil {
		log.WithError(err).Errorf(
			"unable to save key to wallet recovery file before insertion: %q. "+
				"BACK UP THIS KEY NOW TO AVOID DATA LOSS", token.String(),
		)
	}

	return s.repo.Secrets().Upsert(ctx, domain.Secret{
		Timestamp: now.Unix(),
		Value:     token.Secret,
		Mine:      mine,
		Sweep:     true,
	})
}

func (s *service) HaveAcceptedTerms(ctx context.Context) (bool, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.repo.Terms().HasAny(ctx)
}

func (s *service) AreTermsAccepted(ctx context.Context, terms string) (bool, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.repo.Terms().Contains(ctx, terms)
}

func (s *service) AcceptTerms(ctx context.Context, terms string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	accepted, err := s.repo.Terms().Contains(ctx, terms)
	if err != nil {
		return err
	}
	if accepted {
		return nil
	}
	return s.repo.Terms().Add(ctx, terms, time.Now().Unix())
}

func (s *service) Balance(ctx context.Context) (webcash.Amount, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.repo.Outputs().Balance(ctx)
}

func (s *service) ListUnspent(ctx context.Context) ([]domain.Output, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.repo.Outputs().ListUnspent(ctx)
}

// Close releases the store, the process lock and the in-memory master
// secret, in that order.
func (s *service) Close() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.repo.Close()
	if s.locker != nil {
		if err := s.locker.Unlock(); err != nil {
			log.WithError(err).Warn("failed to release wallet lock")
		}
	}
	s.root.Zero()
}
