package service

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"zerah-finance/internal/core/domain"
	"zerah-finance/internal/core/exchange"
	"zerah-finance/internal/core/ledger"
	"zerah-finance/internal/core/ports"
	"zerah-finance/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	defaultIdempotencyTTL  = 24 * time.Hour
	defaultListenerTimeout = 5 * time.Second
)

// LedgerOptions tunes the simulated authorization and the fee rules.
type LedgerOptions struct {
	Delays         map[domain.OperationKind]time.Duration
	TransferFee    exchange.FeePolicy
	ExchangeFee    exchange.FeePolicy
	IdempotencyTTL time.Duration
	// ListenerTimeout bounds each commit listener call.
	ListenerTimeout time.Duration
}

// LedgerServiceImpl implements ports.LedgerService.
type LedgerServiceImpl struct {
	calc       *exchange.Calculator
	builder    *ledger.Builder
	idempCache ports.IdempotencyCache
	opts       LedgerOptions
	log        zerolog.Logger

	// inflight is held for the whole lifecycle of one operation.
	inflight sync.Mutex

	mu        sync.RWMutex
	state     ledger.State
	status    domain.OperationStatus
	listeners []ports.CommitListener
}

// NewLedgerService creates a new LedgerServiceImpl. idempCache may be nil.
func NewLedgerService(
	initial ledger.State,
	calc *exchange.Calculator,
	builder *ledger.Builder,
	idempCache ports.IdempotencyCache,
	opts LedgerOptions,
	log zerolog.Logger,
) *LedgerServiceImpl {
	if opts.IdempotencyTTL <= 0 {
		opts.IdempotencyTTL = defaultIdempotencyTTL
	}
	if opts.ListenerTimeout <= 0 {
		opts.ListenerTimeout = defaultListenerTimeout
	}
	return &LedgerServiceImpl{
		calc:       calc,
		builder:    builder,
		idempCache: idempCache,
		opts:       opts,
		log:        log,
		state:      initial,
		status:     domain.OperationStatus{State: domain.OperationIdle, UpdatedAt: time.Now().UTC()},
	}
}

// AddListener registers l for commit notifications.
func (s *LedgerServiceImpl) AddListener(l ports.CommitListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// plan is a validated operation: what to record and which postings to apply.
type plan struct {
	outcome  ledger.Outcome
	postings []ledger.Posting
}

// InitiateOperation validates, authorizes and commits a send, convert or topup.
func (s *LedgerServiceImpl) InitiateOperation(ctx context.Context, req ports.OperationRequest) (*domain.Transaction, error) {
	if !req.Kind.Valid() {
		return nil, apperror.ErrInvalidInput("unknown operation " + string(req.Kind))
	}

	var idempKey string
	if req.IdempotencyKey != "" && s.idempCache != nil {
		idempKey = domain.BuildIdempotencyKey(req.Kind, req.IdempotencyKey)
		cached, err := s.idempCache.Get(ctx, idempKey)
		if err != nil {
			s.log.Warn().Err(err).Str("key", idempKey).Msg("redis idempotency check failed, processing request")
		}
		if cached != nil {
			return s.unmarshalCachedTransaction(cached)
		}
	}

	if !s.inflight.TryLock() {
		return nil, apperror.ErrOperationInProgress()
	}
	defer s.inflight.Unlock()

	s.setStatus(domain.OperationValidating, req.Kind, "", nil)
	p, err := s.validate(req)
	if err != nil {
		s.reject(req.Kind, err)
		return nil, err
	}

	s.setStatus(domain.OperationAuthorizing, req.Kind, "", nil)
	if err := s.authorize(ctx, req.Kind); err != nil {
		s.reject(req.Kind, err)
		return nil, err
	}

	commit, err := s.commit(p)
	if err != nil {
		s.reject(req.Kind, err)
		return nil, err
	}
	tx := commit.Transaction

	s.log.Info().
		Str("tx_id", tx.ID).
		Str("kind", string(req.Kind)).
		Str("amount", tx.Amount.String()).
		Str("currency", string(tx.Currency)).
		Msg("operation committed")

	s.notify(context.WithoutCancel(ctx), commit)

	if idempKey != "" {
		if data, err := json.Marshal(tx); err == nil {
			if err := s.idempCache.Set(ctx, idempKey, data, s.opts.IdempotencyTTL); err != nil {
				s.log.Warn().Err(err).Str("key", idempKey).Msg("failed to cache idempotency result")
			}
		}
	}

	return &tx, nil
}

// checkAmount accepts positive amounts with at most two decimal places.
func checkAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() || !amount.Equal(domain.RoundMoney(amount)) {
		return apperror.ErrInvalidAmount()
	}
	return nil
}

func (s *LedgerServiceImpl) validate(req ports.OperationRequest) (*plan, error) {
	if err := checkAmount(req.Amount); err != nil {
		return nil, err
	}
	from, ok := domain.ParseCurrency(req.From)
	if !ok {
		return nil, apperror.ErrUnknownCurrency(req.From)
	}

	p := &plan{outcome: ledger.Outcome{Kind: req.Kind, Amount: req.Amount, Currency: from}}

	switch req.Kind {
	case domain.OperationTopup:
		p.postings = []ledger.Posting{ledger.CreditOf(from, req.Amount)}

	case domain.OperationConvert:
		if strings.TrimSpace(req.To) == "" {
			return nil, apperror.ErrInvalidInput("destination currency is required")
		}
		to, ok := domain.ParseCurrency(req.To)
		if !ok {
			return nil, apperror.ErrUnknownCurrency(req.To)
		}
		if to == from {
			return nil, apperror.ErrInvalidInput("source and destination currency must differ")
		}
		q, err := s.calc.Convert(req.Amount, from, to, s.opts.ExchangeFee)
		if err != nil {
			return nil, err
		}
		p.outcome.Quote = &q
		p.postings = []ledger.Posting{
			ledger.DebitOf(from, q.Amount),
			ledger.CreditOf(to, q.ConvertedAmount),
		}

	case domain.OperationSend:
		r, err := validateRecipient(req.Recipient)
		if err != nil {
			return nil, err
		}
		to := from
		if strings.TrimSpace(req.To) != "" {
			if to, ok = domain.ParseCurrency(req.To); !ok {
				return nil, apperror.ErrUnknownCurrency(req.To)
			}
		}
		q, err := s.calc.Convert(req.Amount, from, to, s.opts.TransferFee)
		if err != nil {
			return nil, err
		}
		p.outcome.Quote = &q
		p.outcome.Recipient = r
		// The flat transfer fee is billed separately; the wallet is debited the principal only.
		p.postings = []ledger.Posting{ledger.DebitOf(from, q.Amount)}
	}

	s.mu.RLock()
	_, err := ledger.Apply(s.state.Wallets(), p.postings...)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	return p, nil
}

func validateRecipient(r *domain.Recipient) (*domain.Recipient, error) {
	if r == nil || strings.TrimSpace(r.Name) == "" {
		return nil, apperror.ErrInvalidInput("recipient name is required")
	}
	if strings.TrimSpace(r.AccountNumber) == "" {
		return nil, apperror.ErrInvalidInput("recipient account number is required")
	}
	out := *r
	out.Name = strings.TrimSpace(out.Name)
	out.AccountNumber = strings.TrimSpace(out.AccountNumber)
	if out.Purpose != "" && !slices.Contains(domain.TransferPurposes, out.Purpose) {
		return nil, apperror.ErrInvalidInput(fmt.Sprintf("unsupported transfer purpose %q", out.Purpose))
	}
	return &out, nil
}

// authorize waits out the simulated authorization delay for kind.
func (s *LedgerServiceImpl) authorize(ctx context.Context, kind domain.OperationKind) error {
	d := s.opts.Delays[kind]
	if d <= 0 {
		if err := ctx.Err(); err != nil {
			return apperror.ErrOperationCancelled(err)
		}
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return apperror.ErrOperationCancelled(ctx.Err())
	}
}

// commit applies p and prepends its transaction under the state lock.
func (s *LedgerServiceImpl) commit(p *plan) (domain.Commit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status.State = domain.OperationCommitting
	s.status.UpdatedAt = time.Now().UTC()

	tx, err := s.builder.Build(p.outcome)
	if err != nil {
		return domain.Commit{}, err
	}
	wallets, err := ledger.Apply(s.state.Wallets(), p.postings...)
	if err != nil {
		return domain.Commit{}, err
	}
	s.state = s.state.Commit(wallets, tx)

	s.status = domain.OperationStatus{
		State:         domain.OperationCommitted,
		Kind:          p.outcome.Kind,
		TransactionID: tx.ID,
		UpdatedAt:     tx.CreatedAt,
	}
	return domain.Commit{Transaction: tx, Wallets: wallets.Clone()}, nil
}

func (s *LedgerServiceImpl) notify(ctx context.Context, commit domain.Commit) {
	s.mu.RLock()
	listeners := slices.Clone(s.listeners)
	s.mu.RUnlock()

	for _, l := range listeners {
		s.notifyOne(ctx, l, commit)
	}
}

// notifyOne runs l under ListenerTimeout so a stalled sink cannot hold the
// in-flight guard.
func (s *LedgerServiceImpl) notifyOne(ctx context.Context, l ports.CommitListener, commit domain.Commit) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.ListenerTimeout)
	defer cancel()

	if err := l.OnCommitted(ctx, commit); err != nil {
		s.log.Warn().Err(err).Str("tx_id", commit.Transaction.ID).Msg("commit listener failed")
	}
}

func (s *LedgerServiceImpl) setStatus(state domain.OperationState, kind domain.OperationKind, txID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = domain.OperationStatus{
		State:         state,
		Kind:          kind,
		TransactionID: txID,
		ErrorCode:     apperror.CodeOf(err),
		UpdatedAt:     time.Now().UTC(),
	}
}

func (s *LedgerServiceImpl) reject(kind domain.OperationKind, err error) {
	s.setStatus(domain.OperationRejected, kind, "", err)
	s.log.Warn().Err(err).Str("kind", string(kind)).Msg("operation rejected")
}

// Quote prices a send or convert without touching any wallet.
func (s *LedgerServiceImpl) Quote(_ context.Context, req ports.QuoteRequest) (*exchange.Quote, error) {
	policy := s.opts.ExchangeFee
	switch req.Kind {
	case domain.OperationConvert, "":
	case domain.OperationSend:
		policy = s.opts.TransferFee
	default:
		return nil, apperror.ErrInvalidInput("quotes are available for send and convert only")
	}

	if err := checkAmount(req.Amount); err != nil {
		return nil, err
	}
	from, ok := domain.ParseCurrency(req.From)
	if !ok {
		return nil, apperror.ErrUnknownCurrency(req.From)
	}
	to := from
	if strings.TrimSpace(req.To) != "" {
		if to, ok = domain.ParseCurrency(req.To); !ok {
			return nil, apperror.ErrUnknownCurrency(req.To)
		}
	}

	q, err := s.calc.Convert(req.Amount, from, to, policy)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Wallets returns a snapshot of every wallet.
func (s *LedgerServiceImpl) Wallets(_ context.Context) domain.Wallets {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Wallets()
}

// Transactions returns the activity log, most recent first.
func (s *LedgerServiceImpl) Transactions(_ context.Context, filter ports.TransactionFilter) ([]domain.Transaction, error) {
	f := ledger.Filter{Limit: filter.Limit}
	if filter.Limit < 0 {
		return nil, apperror.ErrInvalidInput("limit must not be negative")
	}
	if filter.Currency != "" {
		c, ok := domain.ParseCurrency(filter.Currency)
		if !ok {
			return nil, apperror.ErrUnknownCurrency(filter.Currency)
		}
		f.Currency = c
	}
	if filter.Type != "" {
		switch t := domain.TransactionType(strings.ToLower(filter.Type)); t {
		case domain.TransactionTypeIncoming, domain.TransactionTypeOutgoing, domain.TransactionTypeConversion:
			f.Type = t
		default:
			return nil, apperror.ErrInvalidInput(fmt.Sprintf("unknown transaction type %q", filter.Type))
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Transactions(f), nil
}

// Rates lists the derived exchange rates.
func (s *LedgerServiceImpl) Rates(_ context.Context) []exchange.Rate {
	return s.calc.Rates().Pairs()
}

// Status reports the state of the current or most recent operation.
func (s *LedgerServiceImpl) Status(_ context.Context) domain.OperationStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Balance returns the balance of c's wallet.
func (s *LedgerServiceImpl) Balance(c domain.Currency) (decimal.Decimal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.state.Wallet(c)
	return w.Balance, ok
}

func (s *LedgerServiceImpl) unmarshalCachedTransaction(data []byte) (*domain.Transaction, error) {
	var tx domain.Transaction
	if err := json.Unmarshal(data, &tx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("unmarshal cached transaction: %w", err))
	}
	return &tx, nil
}
