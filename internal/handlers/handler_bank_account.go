package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/pfm_backend/internal/core/ports/services"
	"github.com/SscSPs/pfm_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// bankAccountHandler holds dependencies for bank account handlers.
type bankAccountHandler struct {
	bankAccountService portssvc.BankAccountSvcFacade
}

func newBankAccountHandler(bs portssvc.BankAccountSvcFacade) *bankAccountHandler {
	return &bankAccountHandler{bankAccountService: bs}
}

// registerBankAccountRoutes registers routes related to bank accounts.
func registerBankAccountRoutes(rg *gin.RouterGroup, bankAccountService portssvc.BankAccountSvcFacade) {
	h := newBankAccountHandler(bankAccountService)

	accounts := rg.Group("/bank-accounts")
	{
		accounts.POST("", h.createBankAccount)
		accounts.GET("", h.listBankAccounts)
		accounts.GET("/:bankAccountID", h.getBankAccount)
		accounts.PUT("/:bankAccountID", h.updateBankAccount)
		accounts.DELETE("/:bankAccountID", h.deleteBankAccount)
	}
}

// createBankAccount godoc
// @Summary Create a bank account
// @Description Creates a bank account for the authenticated user. Currency defaults to USD.
// @Tags bank-accounts
// @Accept json
// @Produce json
// @Param account body dto.CreateBankAccountRequest true "Bank account details"
// @Success 201 {object} dto.BankAccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /bank-accounts [post]
func (h *bankAccountHandler) createBankAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.bankAccountService.CreateBankAccount(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create bank account")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(account))
}

// listBankAccounts godoc
// @Summary List bank accounts
// @Tags bank-accounts
// @Produce json
// @Success 200 {array} dto.BankAccountResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /bank-accounts [get]
func (h *bankAccountHandler) listBankAccounts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	accounts, err := h.bankAccountService.ListBankAccounts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list bank accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBankAccountResponse(accounts))
}

// getBankAccount godoc
// @Summary Get a bank account
// @Tags bank-accounts
// @Produce json
// @Param bankAccountID path string true "Bank account ID"
// @Success 200 {object} dto.BankAccountResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /bank-accounts/{bankAccountID} [get]
func (h *bankAccountHandler) getBankAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	account, err := h.bankAccountService.GetBankAccount(c.Request.Context(), userID, c.Param("bankAccountID"))
	if err != nil {
		respondError(c, err, "Failed to get bank account")
		return
	}
	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}

// updateBankAccount godoc
// @Summary Update a bank account
// @Tags bank-accounts
// @Accept json
// @Produce json
// @Param bankAccountID path string true "Bank account ID"
// @Param account body dto.UpdateBankAccountRequest true "Fields to update"
// @Success 200 {object} dto.BankAccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /bank-accounts/{bankAccountID} [put]
func (h *bankAccountHandler) updateBankAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.bankAccountService.UpdateBankAccount(c.Request.Context(), userID, c.Param("bankAccountID"), req)
	if err != nil {
		respondError(c, err, "Failed to update bank account")
		return
	}
	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}

// deleteBankAccount godoc
// @Summary Delete a bank account
// @Description Deletes the account. Its transactions are kept and lose the account link.
// @Tags bank-accounts
// @Param bankAccountID path string true "Bank account ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /bank-accounts/{bankAccountID} [delete]
func (h *bankAccountHandler) deleteBankAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.bankAccountService.DeleteBankAccount(c.Request.Context(), userID, c.Param("bankAccountID")); err != nil {
		respondError(c, err, "Failed to delete bank account")
		return
	}
	c.Status(http.StatusNoContent)
}
