package position

import (
	"context"
	"lending/core"
	"lending/pkg/loan"

	"github.com/fox-one/pkg/logger"
)

const (
	reasonExpired    = "expired"
	reasonUnderwater = "underwater"
)

func elapsed(position *core.Position, now int64) int64 {
	if !position.HasActiveLoan() {
		return 0
	}

	return now - position.LoanIssuedAt
}

// repayment collateral plus the interest accrued on it
func repayment(position *core.Position, now int64) (uint64, uint64, error) {
	interest, err := loan.CompoundInterest(position.CollateralAmount, position.LoanInterestRate, elapsed(position, now))
	if err != nil {
		return 0, 0, err
	}

	amount, err := loan.Add(position.CollateralAmount, interest)
	if err != nil {
		return 0, 0, err
	}

	return amount, interest, nil
}

func (s *positionService) liquidatable(ctx context.Context, position *core.Position, now int64) (bool, string, error) {
	if position.CollateralAmount == 0 || !position.HasActiveLoan() {
		return false, "", nil
	}

	maturesAt, err := position.MaturesAt()
	if err != nil {
		return false, "", err
	}

	if now > maturesAt {
		return true, reasonExpired, nil
	}

	valuation, err := s.valuation.Valuation(ctx, position)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("valuation.Valuation")
		return false, "", err
	}

	debt, err := loan.Debt(position.LoanAmount, position.LoanInterestRate, elapsed(position, now))
	if err != nil {
		return false, "", err
	}

	if loan.Underwater(valuation, debt, s.config.LiquidationThreshold) {
		return true, reasonUnderwater, nil
	}

	return false, "", nil
}

func (s *positionService) Liquidatable(ctx context.Context, position *core.Position) (bool, string, error) {
	now, err := s.clock.Now(ctx)
	if err != nil {
		return false, "", err
	}

	return s.liquidatable(ctx, position, now)
}

func (s *positionService) Quote(ctx context.Context, owner string) (*core.Position, *core.Quote, error) {
	position, err := s.positions.Find(ctx, owner)
	if err != nil {
		return nil, nil, err
	}

	if position.ID == 0 {
		return nil, nil, core.ErrPositionNotFound
	}

	now, err := s.clock.Now(ctx)
	if err != nil {
		return nil, nil, err
	}

	valuation, err := s.valuation.Valuation(ctx, position)
	if err != nil {
		return nil, nil, err
	}

	quote := &core.Quote{
		Now:       now,
		Valuation: valuation,
		LTV:       s.config.LTV.Lookup(position.CollateralType),
	}

	if quote.MaxLoan, err = loan.MaxLoan(valuation, quote.LTV); err != nil {
		return nil, nil, err
	}

	if quote.RepayAmount, quote.InterestDue, err = repayment(position, now); err != nil {
		return nil, nil, err
	}

	if position.HasActiveLoan() {
		if quote.Debt, err = loan.Debt(position.LoanAmount, position.LoanInterestRate, elapsed(position, now)); err != nil {
			return nil, nil, err
		}

		if quote.MaturesAt, err = position.MaturesAt(); err != nil {
			return nil, nil, err
		}
	}

	quote.HealthFactor = loan.HealthFactor(valuation, quote.Debt)
	if quote.Liquidatable, quote.Reason, err = s.liquidatable(ctx, position, now); err != nil {
		return nil, nil, err
	}

	return position, quote, nil
}
