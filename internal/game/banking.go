package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// debtLimit scales the ceiling on outstanding principal with standing.
// Lenders stop at 5,000 for a nobody and add 500 per reputation point.
func debtLimit(st *GameState) int64 {
	return 5_000 + 500*int64(st.Player.Reputation)
}

func outstandingDebt(st *GameState) int64 {
	var total int64
	for _, l := range st.Player.Loans {
		total += l.Principal
	}
	return total
}

func applyTakeLoan(st GameState, amount int64, apr float64, now time.Time) (GameState, error) {
	if st.GameOver {
		return st, ErrGameOver
	}
	if amount <= 0 {
		return st, fmt.Errorf("loan amount must be > 0")
	}
	limit := debtLimit(&st)
	if outstandingDebt(&st)+amount > limit {
		return st, fmt.Errorf("%w: max outstanding principal is %d", ErrDebtLimit, limit)
	}
	st.Player.Loans = append(st.Player.Loans, Loan{
		ID:        uuid.NewString(),
		Principal: amount,
		APR:       apr,
		TakenAt:   now,
	})
	st.Player.NetWorth += amount
	return st, nil
}

func applyRepayLoan(st GameState, loanID string, amount int64) (GameState, error) {
	if st.GameOver {
		return st, ErrGameOver
	}
	if amount <= 0 {
		return st, fmt.Errorf("repayment must be > 0")
	}
	if amount > st.Player.NetWorth {
		return st, fmt.Errorf("%w: you need %d more credits", ErrInsufficientFunds, amount-st.Player.NetWorth)
	}
	for i := range st.Player.Loans {
		loan := &st.Player.Loans[i]
		if loan.ID != loanID {
			continue
		}
		if amount > loan.Principal {
			amount = loan.Principal
		}
		st.Player.NetWorth -= amount
		loan.Principal -= amount
		if loan.Principal == 0 {
			st.Player.Loans = append(st.Player.Loans[:i], st.Player.Loans[i+1:]...)
		}
		return st, nil
	}
	return st, fmt.Errorf("loan %s not found", loanID)
}

// applyUpkeepTick settles the slow-cadence costs: loan interest compounds
// onto the principal, crew draw salaries, each owned establishment's market
// value takes a random-walk step, and sustained deep debt ends the run.
func applyUpkeepTick(st GameState, rng *rand.Rand, interval time.Duration, debtFloor int64, grace time.Duration, now time.Time) (GameState, error) {
	if st.GameOver {
		return st, nil
	}

	yearFraction := interval.Hours() / (24 * 365)
	for i := range st.Player.Loans {
		loan := &st.Player.Loans[i]
		interest := int64(float64(loan.Principal) * loan.APR * yearFraction)
		if interest < 1 {
			interest = 1
		}
		loan.Principal += interest
	}

	for _, c := range st.Player.Crew {
		st.Player.NetWorth -= c.Salary
	}

	for v, vs := range st.Player.Ventures {
		if vs.Contract == nil {
			continue
		}
		vs.Contract.MarketValue, vs.Contract.ValueHistory =
			randomWalkValue(vs.Contract.MarketValue, vs.Contract.ValueHistory, rng)
		st.Player.Ventures[v] = vs
	}

	if st.Player.NetWorth < debtFloor {
		if st.Player.NegativeSince == nil {
			t := now
			st.Player.NegativeSince = &t
		} else if now.Sub(*st.Player.NegativeSince) >= grace {
			st.GameOver = true
		}
	} else {
		st.Player.NegativeSince = nil
	}
	return st, nil
}
