package cmd

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/bnema/fundme-cli/internal/application"
	"github.com/bnema/fundme-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two wired apps over the same HOME behave like two fm processes: they share
// files but no in-memory state besides the per-path mutexes.
func TestConcurrentFundsFromSeparateAppsAllReachThePool(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	first := wireTestApp(t)
	second := wireTestApp(t)
	ctx := context.Background()

	owner, err := domain.ParseAddress(ownerAddr)
	require.NoError(t, err)
	_, err = first.service.Deploy(ctx, application.DeployCommand{Owner: owner})
	require.NoError(t, err)

	oneEther, err := domain.ParseEther("1")
	require.NoError(t, err)

	const funders = 20
	addresses := make([]domain.Address, funders)
	for i := range addresses {
		addresses[i] = domain.Address(fmt.Sprintf("0x%040x", i+1))
		require.NoError(t, first.wallets.Mint(ctx, addresses[i], oneEther))
	}

	var wg sync.WaitGroup
	errs := make([]error, funders)
	for i, address := range addresses {
		target := first
		if i%2 == 1 {
			target = second
		}

		wg.Add(1)
		go func(i int, target *app, address domain.Address) {
			defer wg.Done()
			_, errs[i] = target.service.Fund(ctx, application.FundCommand{Caller: address, Value: oneEther})
		}(i, target, address)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "fund %d", i)
	}

	status, err := second.service.Status(ctx)
	require.NoError(t, err)
	assert.Len(t, status.Funders, funders)

	wantPool, err := domain.ParseEther("20")
	require.NoError(t, err)
	assert.Equal(t, wantPool.String(), status.Pool.String())

	for _, address := range addresses {
		balance, err := first.wallets.BalanceOf(ctx, address)
		require.NoError(t, err)
		assert.Zero(t, balance.Sign(), "wallet %s", address)
	}
}

func wireTestApp(t *testing.T) *app {
	t.Helper()

	a, err := wireApp()
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.close() })
	return a
}
