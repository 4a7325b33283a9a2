package chain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketmind/internal/domain"
)

type stubAdapter struct {
	tag string
}

func (s *stubAdapter) Chain() string { return s.tag }
func (s *stubAdapter) GetBalance(context.Context, string, string) (*domain.Balance, error) {
	return nil, nil
}
func (s *stubAdapter) ExecuteTransaction(context.Context, domain.TxData) (string, error) {
	return "", nil
}
func (s *stubAdapter) IsValidAddress(string) bool { return true }

func TestRegistrySelectsByChainTag(t *testing.T) {
	evm := &stubAdapter{tag: domain.ChainEVM}
	sol := &stubAdapter{tag: domain.ChainSolana}
	registry := NewRegistry(evm, sol)

	got, err := registry.ForChain(domain.ChainEVM)
	require.NoError(t, err)
	assert.Same(t, evm, got.(*stubAdapter))

	got, err = registry.ForChain(domain.ChainSolana)
	require.NoError(t, err)
	assert.Same(t, sol, got.(*stubAdapter))
}

func TestRegistryUnknownChain(t *testing.T) {
	registry := NewRegistry(&stubAdapter{tag: domain.ChainEVM})

	_, err := registry.ForChain("cosmos")
	require.ErrorIs(t, err, domain.ErrUnknownChain)
	assert.Contains(t, err.Error(), "cosmos")
}

func TestRegistryChainsLists(t *testing.T) {
	registry := NewRegistry(&stubAdapter{tag: domain.ChainEVM}, &stubAdapter{tag: domain.ChainSolana})
	assert.ElementsMatch(t, []string{domain.ChainEVM, domain.ChainSolana}, registry.Chains())
}
