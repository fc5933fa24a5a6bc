package position

import (
	"context"
	"lending/core"
	"lending/pkg/id"
	"lending/pkg/loan"

	"github.com/fatih/structs"
	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/uuid"
	"github.com/sirupsen/logrus"
)

type positionService struct {
	config    Config
	positions core.PositionStore
	ledger    core.AssetLedger
	valuation core.ValuationProvider
	clock     core.Clock
	events    core.EventSink
}

// New new position service
func New(cfg Config,
	positions core.PositionStore,
	ledger core.AssetLedger,
	valuation core.ValuationProvider,
	clock core.Clock,
	events core.EventSink) core.PositionService {
	if cfg.LTV == nil {
		cfg.LTV = loan.DefaultLTV()
	}

	return &positionService{
		config:    cfg,
		positions: positions,
		ledger:    ledger,
		valuation: valuation,
		clock:     clock,
		events:    events,
	}
}

func (s *positionService) Deposit(ctx context.Context, owner string, amount uint64, collateralType core.CollateralType, traceID string) (*core.Position, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"op":     "deposit",
		"owner":  owner,
		"amount": amount,
	})
	ctx = logger.WithContext(ctx, log)

	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	if err := loan.Require(amount > 0, core.ErrInvalidAmount); err != nil {
		return nil, err
	}

	if err := loan.Require(collateralType.IsValid(), core.ErrInvalidCollateralType); err != nil {
		return nil, err
	}

	position, err := s.positions.Find(ctx, owner)
	if err != nil {
		log.WithError(err).Errorln("positions.Find")
		return nil, err
	}

	holding := position.CollateralAmount > 0 || position.HasActiveLoan()
	if holding && position.CollateralType != collateralType {
		log.Infoln("collateral type mismatch")
		return nil, core.ErrCollateralTypeMismatch
	}

	next := position.Clone()
	next.Owner = owner
	next.CollateralType = collateralType
	if next.CollateralAmount, err = loan.Add(position.CollateralAmount, amount); err != nil {
		return nil, err
	}

	traceID = ensureTrace(traceID)
	moves := []*move{
		{transfer: &core.Transfer{
			TraceID: uuid.Modify(traceID, "deposit"),
			Kind:    core.TransferKindIn,
			AssetID: s.config.CollateralAsset,
			From:    owner,
			To:      s.config.Custodian,
			Amount:  amount,
			Memo:    "deposit",
		}},
	}

	event := &core.Event{
		TraceID: uuid.Modify(traceID, "event"),
		Type:    core.EventCollateralDeposited,
		Owner:   owner,
		Amount:  amount,
	}

	return s.commit(ctx, position, next, moves, event)
}

func (s *positionService) Issue(ctx context.Context, owner string, input core.IssueInput) (*core.Position, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"op":     "issue",
		"owner":  owner,
		"amount": input.Amount,
	})
	ctx = logger.WithContext(ctx, log)

	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	if err := loan.Require(input.Amount > 0, core.ErrInvalidAmount); err != nil {
		return nil, err
	}

	if err := loan.Require(input.Duration > 0 && input.GracePeriod >= 0, core.ErrInvalidDuration); err != nil {
		return nil, err
	}

	if err := loan.Require(input.InterestType.IsValid(), core.ErrInvalidInterestType); err != nil {
		return nil, err
	}

	position, err := s.positions.Find(ctx, owner)
	if err != nil {
		log.WithError(err).Errorln("positions.Find")
		return nil, err
	}

	if err := loan.Require(position.CollateralAmount > 0, core.ErrNoCollateralDeposited); err != nil {
		return nil, err
	}

	now, err := s.clock.Now(ctx)
	if err != nil {
		log.WithError(err).Errorln("clock.Now")
		return nil, err
	}

	if position.HasActiveLoan() {
		maturesAt, err := position.MaturesAt()
		if err != nil {
			return nil, err
		}

		if now < maturesAt {
			log.Infoln("previous loan not matured")
			return nil, core.ErrLoanAlreadyIssued
		}
	}

	valuation, err := s.valuation.Valuation(ctx, position)
	if err != nil {
		log.WithError(err).Errorln("valuation.Valuation")
		return nil, err
	}

	maxLoan, err := loan.MaxLoan(valuation, s.config.LTV.Lookup(position.CollateralType))
	if err != nil {
		return nil, err
	}

	if input.Amount > maxLoan {
		log.WithField("max_loan", maxLoan).Infoln("loan exceeds max loan")
		return nil, core.ErrInsufficientCollateral
	}

	fee, err := loan.Bps(input.Amount, s.config.ProtocolFeeBps)
	if err != nil {
		return nil, err
	}

	received, err := loan.Sub(input.Amount, fee)
	if err != nil {
		return nil, err
	}

	next := position.Clone()
	next.LoanAmount = input.Amount
	next.LoanIssuedAt = now
	next.LoanDuration = input.Duration
	next.LoanInterestRate = input.InterestRate
	next.InterestType = input.InterestType
	next.GracePeriod = input.GracePeriod

	traceID := ensureTrace(input.TraceID)
	moves := []*move{
		{mint: true, transfer: &core.Transfer{
			TraceID: uuid.Modify(traceID, "issue"),
			Kind:    core.TransferKindMint,
			AssetID: s.config.LoanAsset,
			From:    s.config.MintAuthority,
			To:      owner,
			Amount:  received,
			Memo:    "loan",
		}},
	}

	if fee > 0 {
		moves = append(moves, &move{mint: true, transfer: &core.Transfer{
			TraceID: uuid.Modify(traceID, "fee"),
			Kind:    core.TransferKindMint,
			AssetID: s.config.LoanAsset,
			From:    s.config.MintAuthority,
			To:      s.config.Treasury,
			Amount:  fee,
			Memo:    "loan fee",
		}})
	}

	event := &core.Event{
		TraceID: uuid.Modify(traceID, "event"),
		Type:    core.EventLoanIssued,
		Owner:   owner,
		Amount:  input.Amount,
	}

	return s.commit(ctx, position, next, moves, event)
}

func (s *positionService) Repay(ctx context.Context, owner string, amount uint64, traceID string) (*core.Position, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"op":     "repay",
		"owner":  owner,
		"amount": amount,
	})
	ctx = logger.WithContext(ctx, log)

	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	position, err := s.positions.Find(ctx, owner)
	if err != nil {
		log.WithError(err).Errorln("positions.Find")
		return nil, err
	}

	if err := loan.Require(position.CollateralAmount > 0, core.ErrNoCollateralDeposited); err != nil {
		return nil, err
	}

	now, err := s.clock.Now(ctx)
	if err != nil {
		log.WithError(err).Errorln("clock.Now")
		return nil, err
	}

	repayAmount, _, err := repayment(position, now)
	if err != nil {
		return nil, err
	}

	if amount < repayAmount {
		log.WithField("required", repayAmount).Infoln("insufficient repayment")
		return nil, core.ErrInsufficientRepayment
	}

	next := position.Clone()
	next.CollateralAmount = 0
	next.ClearLoan()

	traceID = ensureTrace(traceID)
	moves := []*move{
		{transfer: &core.Transfer{
			TraceID: uuid.Modify(traceID, "repay"),
			Kind:    core.TransferKindIn,
			AssetID: s.config.LoanAsset,
			From:    owner,
			To:      s.config.Custodian,
			Amount:  amount,
			Memo:    "repay",
		}},
		{transfer: &core.Transfer{
			TraceID: uuid.Modify(traceID, "release"),
			Kind:    core.TransferKindOut,
			AssetID: s.config.CollateralAsset,
			From:    s.config.Custodian,
			To:      owner,
			Amount:  position.CollateralAmount,
			Memo:    "release collateral",
		}},
	}

	event := &core.Event{
		TraceID: uuid.Modify(traceID, "event"),
		Type:    core.EventLoanRepaid,
		Owner:   owner,
		Amount:  amount,
	}

	return s.commit(ctx, position, next, moves, event)
}

func (s *positionService) Liquidate(ctx context.Context, owner, liquidator, traceID string) (*core.Position, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"op":         "liquidate",
		"owner":      owner,
		"liquidator": liquidator,
	})
	ctx = logger.WithContext(ctx, log)

	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	if err := validateOwner(liquidator); err != nil {
		return nil, err
	}

	if !s.config.AllowSelfLiquidation && owner == liquidator {
		log.Infoln("self liquidation forbidden")
		return nil, core.ErrOperationForbidden
	}

	position, err := s.positions.Find(ctx, owner)
	if err != nil {
		log.WithError(err).Errorln("positions.Find")
		return nil, err
	}

	if err := loan.Require(position.CollateralAmount > 0, core.ErrNoCollateralDeposited); err != nil {
		return nil, err
	}

	now, err := s.clock.Now(ctx)
	if err != nil {
		log.WithError(err).Errorln("clock.Now")
		return nil, err
	}

	ok, reason, err := s.liquidatable(ctx, position, now)
	if err != nil {
		return nil, err
	}

	if !ok {
		log.Infoln("position not liquidatable")
		return nil, core.ErrLoanNotExpiredOrCollateralUnderwater
	}

	log = log.WithField("reason", reason)
	ctx = logger.WithContext(ctx, log)

	collateral := position.CollateralAmount
	reward, err := loan.Percent(collateral, s.config.LiquidationRewardPercent)
	if err != nil {
		return nil, err
	}

	remainder, err := loan.Sub(collateral, reward)
	if err != nil {
		return nil, err
	}

	next := position.Clone()
	next.CollateralAmount = 0
	next.ClearLoan()

	traceID = ensureTrace(traceID)
	var moves []*move
	if reward > 0 {
		moves = append(moves, &move{transfer: &core.Transfer{
			TraceID: uuid.Modify(traceID, "reward"),
			Kind:    core.TransferKindOut,
			AssetID: s.config.CollateralAsset,
			From:    s.config.Custodian,
			To:      liquidator,
			Amount:  reward,
			Memo:    "liquidation reward",
		}})
	}

	if remainder > 0 {
		moves = append(moves, &move{transfer: &core.Transfer{
			TraceID: uuid.Modify(traceID, "remainder"),
			Kind:    core.TransferKindOut,
			AssetID: s.config.CollateralAsset,
			From:    s.config.Custodian,
			To:      s.config.remainderRecipient(owner, liquidator),
			Amount:  remainder,
			Memo:    "liquidation remainder",
		}})
	}

	event := &core.Event{
		TraceID:    uuid.Modify(traceID, "event"),
		Type:       core.EventCollateralLiquidated,
		Owner:      owner,
		Liquidator: liquidator,
		Amount:     collateral,
	}

	return s.commit(ctx, position, next, moves, event)
}

func (s *positionService) Withdraw(ctx context.Context, owner string, amount uint64, traceID string) (*core.Position, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"op":     "withdraw",
		"owner":  owner,
		"amount": amount,
	})
	ctx = logger.WithContext(ctx, log)

	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	position, err := s.positions.Find(ctx, owner)
	if err != nil {
		log.WithError(err).Errorln("positions.Find")
		return nil, err
	}

	if err := loan.Require(amount > 0 && amount <= position.CollateralAmount, core.ErrInvalidAmount); err != nil {
		return nil, err
	}

	valuation, err := s.valuation.Valuation(ctx, position)
	if err != nil {
		log.WithError(err).Errorln("valuation.Valuation")
		return nil, err
	}

	required, err := loan.RequiredCollateral(position.CollateralAmount, s.config.LTV.Lookup(position.CollateralType))
	if err != nil {
		return nil, err
	}

	if amount > valuation || valuation-amount < required {
		log.WithField("required", required).Infoln("insufficient collateral remaining")
		return nil, core.ErrInsufficientCollateralRemaining
	}

	next := position.Clone()
	next.CollateralAmount = position.CollateralAmount - amount

	traceID = ensureTrace(traceID)
	moves := []*move{
		{transfer: &core.Transfer{
			TraceID: uuid.Modify(traceID, "withdraw"),
			Kind:    core.TransferKindOut,
			AssetID: s.config.CollateralAsset,
			From:    s.config.Custodian,
			To:      owner,
			Amount:  amount,
			Memo:    "withdraw",
		}},
	}

	event := &core.Event{
		TraceID: uuid.Modify(traceID, "event"),
		Type:    core.EventCollateralWithdrawn,
		Owner:   owner,
		Amount:  amount,
	}

	return s.commit(ctx, position, next, moves, event)
}

func (s *positionService) Refinance(ctx context.Context, owner string, input core.RefinanceInput) (*core.Position, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"op":    "refinance",
		"owner": owner,
	})
	ctx = logger.WithContext(ctx, log)

	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	if input.Duration != nil {
		if err := loan.Require(*input.Duration > 0, core.ErrInvalidDuration); err != nil {
			return nil, err
		}
	}

	position, err := s.positions.Find(ctx, owner)
	if err != nil {
		log.WithError(err).Errorln("positions.Find")
		return nil, err
	}

	if position.ID == 0 {
		return nil, core.ErrPositionNotFound
	}

	next := position.Clone()
	if input.Duration != nil {
		next.LoanDuration = *input.Duration
	}

	if input.InterestRate != nil {
		next.LoanInterestRate = *input.InterestRate
	}

	traceID := ensureTrace(input.TraceID)
	event := &core.Event{
		TraceID:         uuid.Modify(traceID, "event"),
		Type:            core.EventLoanRefinanced,
		Owner:           owner,
		NewDuration:     next.LoanDuration,
		NewInterestRate: next.LoanInterestRate,
	}

	return s.commit(ctx, position, next, nil, event)
}

// commit reserves the ledger movements, swaps the stored record, then releases the
// movements. Reserved movements are reverted when a step before the swap fails.
func (s *positionService) commit(ctx context.Context, prev, next *core.Position, moves []*move, event *core.Event) (*core.Position, error) {
	log := logger.FromContext(ctx)

	tx := &ledgerTx{ledger: s.ledger}
	for _, m := range moves {
		if err := tx.apply(ctx, m); err != nil {
			log.WithError(err).WithField("trace", m.transfer.TraceID).Errorln("ledger apply")
			tx.rollback(ctx)
			return nil, err
		}
	}

	var err error
	if prev.ID == 0 {
		next.Version = 1
		err = s.positions.Create(ctx, next)
	} else {
		next.Version = prev.Version + 1
		err = s.positions.Update(ctx, next, prev.Version)
	}

	if err != nil {
		log.WithError(err).Errorln("positions.Save")
		tx.rollback(ctx)
		return nil, err
	}

	tx.commit(ctx)
	s.publish(ctx, event)
	return next, nil
}

func (s *positionService) publish(ctx context.Context, event *core.Event) {
	fields := structs.New(event)
	fields.TagName = "json"
	log := logger.FromContext(ctx).WithFields(fields.Map())

	if err := s.events.Publish(ctx, event); err != nil {
		log.WithError(err).Errorln("events.Publish")
		return
	}

	log.Infoln("event published")
}

func validateOwner(owner string) error {
	return loan.Require(owner != "", core.ErrOperationForbidden)
}

// PaymentTrace trace id of the payment the owner makes for an operation,
// op is "deposit" or "repay"
func PaymentTrace(traceID, op string) string {
	return uuid.Modify(id.Normalize(traceID), op)
}

func ensureTrace(traceID string) string {
	if traceID == "" {
		return uuid.New()
	}

	return id.Normalize(traceID)
}
