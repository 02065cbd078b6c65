package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/tradersroom/internal/funding/domain"
	walletdomain "github.com/wyfcoding/tradersroom/internal/wallet/domain"
)

type stubKycVerifier struct {
	identity bool
	address  bool
}

func (s *stubKycVerifier) HasApprovedIdentity(ctx context.Context, userID uint) (bool, error) {
	return s.identity, nil
}

func (s *stubKycVerifier) HasApprovedAddress(ctx context.Context, userID uint) (bool, error) {
	return s.address, nil
}

func newChecker(t *testing.T, kyc KycVerifier) (*EligibilityChecker, *fundingFixture) {
	t.Helper()
	f := newFundingFixture(t)
	checker := NewEligibilityChecker(kyc, f.svc.withdrawalMethods, f.ledger)
	return checker, f
}

func TestEligibilityFailsWithoutApprovedKyc(t *testing.T) {
	cases := []struct {
		name     string
		identity bool
		address  bool
	}{
		{"no documents", false, false},
		{"identity only", true, false},
		{"address only", false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			checker, _ := newChecker(t, &stubKycVerifier{identity: tc.identity, address: tc.address})

			result, err := checker.Check(context.Background(), 1)
			require.NoError(t, err)
			require.False(t, result.Eligible)
			require.Equal(t, ReasonKycIncomplete, result.Reason)
		})
	}
}

func TestEligibilityFailsWithoutActiveMethods(t *testing.T) {
	checker, _ := newChecker(t, &stubKycVerifier{identity: true, address: true})

	result, err := checker.Check(context.Background(), 1)
	require.NoError(t, err)
	require.False(t, result.Eligible)
	require.Equal(t, ReasonNoActiveMethods, result.Reason)
}

func TestEligibilityFailsWithoutBalance(t *testing.T) {
	checker, f := newChecker(t, &stubKycVerifier{identity: true, address: true})
	f.activeWithdrawalMethod(t, 1)

	result, err := checker.Check(context.Background(), 1)
	require.NoError(t, err)
	require.False(t, result.Eligible)
	require.Equal(t, ReasonNoBalance, result.Reason)
}

func TestEligibilityPassesWithKycMethodsAndBalance(t *testing.T) {
	checker, f := newChecker(t, &stubKycVerifier{identity: true, address: true})
	ctx := context.Background()
	f.activeWithdrawalMethod(t, 1)
	require.NoError(t, f.ledger.Append(ctx, walletdomain.NewDepositEntry(1, decimal.NewFromInt(100), 1, "")))

	result, err := checker.Check(ctx, 1)
	require.NoError(t, err)
	require.True(t, result.Eligible)
	require.Empty(t, result.Reason)
	require.True(t, result.Balance.Equal(decimal.NewFromInt(100)))
}

func TestInactiveMethodDoesNotCountForEligibility(t *testing.T) {
	checker, f := newChecker(t, &stubKycVerifier{identity: true, address: true})
	method := &domain.WithdrawalMethod{UserID: 1, Type: domain.MethodBank, Status: domain.MethodInactive}
	require.NoError(t, f.db.Create(method).Error)

	result, err := checker.Check(context.Background(), 1)
	require.NoError(t, err)
	require.False(t, result.Eligible)
	require.Equal(t, ReasonNoActiveMethods, result.Reason)
}
