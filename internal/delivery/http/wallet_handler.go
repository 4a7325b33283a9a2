package http

import (
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"

	"marketmind/internal/adapter/chain"
	"marketmind/internal/domain"
	"marketmind/internal/middleware"
)

// WalletHandler exposes wallet bindings and on-chain balances
type WalletHandler struct {
	wallets domain.WalletRepository
	chains  *chain.Registry
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(wallets domain.WalletRepository, chains *chain.Registry) *WalletHandler {
	return &WalletHandler{
		wallets: wallets,
		chains:  chains,
	}
}

// GetWallets lists the user's wallet bindings
// GET /api/wallet
func (h *WalletHandler) GetWallets(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Authentication required")
	}

	bindings, err := h.wallets.GetByUser(c.Request().Context(), userID)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to load wallets", err)
	}
	return SuccessResponse(c, bindings)
}

// GetBalance returns the on-chain balance of the user's default wallet
// on the requested chain
// GET /api/wallet/balance?chain=evm&token=0x...
func (h *WalletHandler) GetBalance(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Authentication required")
	}

	chainTag := c.QueryParam("chain")
	if chainTag == "" {
		chainTag = domain.ChainEVM
	}

	ctx := c.Request().Context()

	wallet, err := h.wallets.GetDefault(ctx, userID, chainTag)
	if err != nil {
		if errors.Is(err, domain.ErrNoWallet) {
			return NotFoundResponse(c, fmt.Sprintf("No wallet bound for chain %s", chainTag))
		}
		return InternalServerErrorResponse(c, "Failed to load wallet", err)
	}

	adapter, err := h.chains.ForChain(wallet.Chain)
	if err != nil {
		return BadRequestResponse(c, err.Error())
	}

	balance, err := adapter.GetBalance(ctx, wallet.Address, c.QueryParam("token"))
	if err != nil {
		return InternalServerErrorResponse(c, fmt.Sprintf("Failed to fetch balance on %s", wallet.Chain), err)
	}

	return SuccessResponse(c, map[string]interface{}{
		"chain":   wallet.Chain,
		"address": wallet.Address,
		"balance": balance,
	})
}
