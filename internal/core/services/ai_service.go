package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/pfm_backend/internal/apperrors"
	"github.com/SscSPs/pfm_backend/internal/core/domain"
	portsprov "github.com/SscSPs/pfm_backend/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/pfm_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pfm_backend/internal/core/ports/services"
	"github.com/SscSPs/pfm_backend/internal/dto"
	"github.com/SscSPs/pfm_backend/internal/utils/jsonx"
	"github.com/SscSPs/pfm_backend/internal/utils/money"
)

const (
	aiResource = "AI"
	// aiContextTransactions bounds how many recent transactions go into a prompt.
	aiContextTransactions = 200
	// The budget chat looks at a shorter, more detailed window.
	budgetChatTransactions = 50
	budgetChatWindowDays   = 60
)

const transactionQAPrompt = `You are a financial assistant.
You will receive a user's transactions and a question.
Use ONLY the provided transactions to answer.
Do not make assumptions or invent numbers.
If unsure, reply: "I don't have enough data to answer."

Transactions:
%s

Question: %s
`

const budgetAdvicePrompt = `You are a budget advisor.
Analyze the user's financial data for the current month.

Data (all amounts in %s):
- Income vs expense: %s
- Budgets vs actual spending: %s
- Savings obligations vs monthly income: %s

Provide a JSON summary with:
1. "status": "Good" | "Warning" | "Critical"
2. "insights": an array of 3 short, actionable strings.
3. "recommendation": a short paragraph of advice.

Output format (strict JSON):
{
  "status": "string",
  "insights": ["string", "string", "string"],
  "recommendation": "string"
}
`

const budgetChatPrompt = `You are the budget advisor chatbot.
Answer the user's question based on their recent financial data.
Be helpful, specific and data-driven.
If the answer isn't in the data, say "I don't have enough data to answer that."

Data (base currency %s):
%s

Conversation:
%s

User question: %q

Answer:
`

const goalConflictPrompt = `You are a financial conflict resolver.
The user wants to add a NEW goal but it conflicts with their income or existing commitments.

User's monthly obligations (all amounts in %s):
%s

The NEW goal causing the conflict:
%s

Your task:
1. Analyze the situation.
2. Suggest solutions, e.g. extend the date of the new goal, reduce the amount, or delay other goals.
3. If you have a specific, viable solution the user seems to agree to, output a "proposal".
4. Otherwise just provide "message".

Output format (strict JSON):
{
  "message": "Your helpful response to the user",
  "proposal": null | { "targetAmount": number, "targetDate": "YYYY-MM-DD" }
}

Output ONLY valid JSON. Be concise and empathetic.

Conversation:
%s

User's latest input: %q

Response (JSON):
`

// AIRepositories groups the readers the assistant builds prompts from.
type AIRepositories struct {
	Users        portsrepo.UserReader
	Transactions portsrepo.TransactionReader
	Budgets      portsrepo.BudgetReader
}

// AIServiceOption is a functional option for configuring the assistant service
type AIServiceOption func(*aiService)

// WithAIClock overrides the service clock.
func WithAIClock(now func() time.Time) AIServiceOption {
	return func(s *aiService) {
		s.Now = now
	}
}

type aiService struct {
	BaseService
	generator       portsprov.TextGenerator
	userRepo        portsrepo.UserReader
	transactionRepo portsrepo.TransactionReader
	budgetRepo      portsrepo.BudgetReader
	reporting       portssvc.ReportingService
	goals           portssvc.GoalSvcFacade
}

// NewAIService creates the assistant service.
func NewAIService(generator portsprov.TextGenerator, repos AIRepositories, reporting portssvc.ReportingService, goals portssvc.GoalSvcFacade, options ...AIServiceOption) portssvc.AISvc {
	s := &aiService{
		BaseService:     newBaseService(),
		generator:       generator,
		userRepo:        repos.Users,
		transactionRepo: repos.Transactions,
		budgetRepo:      repos.Budgets,
		reporting:       reporting,
		goals:           goals,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

var _ portssvc.AISvc = (*aiService)(nil)

type transactionContext struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// AskTransactions answers a question using only the user's recent transactions.
func (s *aiService) AskTransactions(ctx context.Context, userID, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", apperrors.NewFieldValidationError(aiResource, "question", "Question is required")
	}
	txns, err := s.transactionRepo.ListTransactions(ctx, userID, domain.TransactionFilter{Limit: aiContextTransactions})
	if err != nil {
		return "", err
	}
	rows := make([]transactionContext, len(txns))
	for i, t := range txns {
		rows[i] = transactionContext{
			ID:          t.TransactionID,
			Date:        t.Date.Format(time.DateOnly),
			Amount:      t.Amount.String(),
			Currency:    t.Currency,
			Type:        string(t.Type),
			Category:    string(t.Category),
			Description: t.Description,
		}
	}
	payload, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", err
	}

	answer, err := s.generator.Generate(ctx, fmt.Sprintf(transactionQAPrompt, payload, question))
	if err != nil {
		s.LogError(ctx, err, "Transaction question failed", slog.String("user_id", userID))
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// BudgetAdvice summarizes the month's reports into a prompt and parses the JSON reply.
func (s *aiService) BudgetAdvice(ctx context.Context, userID string) (*dto.BudgetAdviceResponse, error) {
	ive, err := s.reporting.IncomeVsExpense(ctx, userID, domain.Monthly, nil)
	if err != nil {
		return nil, err
	}
	bva, err := s.reporting.BudgetVsActual(ctx, userID, domain.Monthly, nil)
	if err != nil {
		return nil, err
	}
	conflicts, err := s.goals.CheckGoalConflicts(ctx, userID)
	if err != nil {
		return nil, err
	}

	iveJSON, err := json.Marshal(dto.ToIncomeVsExpenseResponse(ive))
	if err != nil {
		return nil, err
	}
	bvaJSON, err := json.Marshal(dto.ToBudgetVsActualResponse(bva))
	if err != nil {
		return nil, err
	}
	conflictJSON, err := json.Marshal(dto.ToGoalConflictResponse(conflicts))
	if err != nil {
		return nil, err
	}

	raw, err := s.generator.Generate(ctx, fmt.Sprintf(budgetAdvicePrompt, ive.Currency, iveJSON, bvaJSON, conflictJSON))
	if err != nil {
		s.LogError(ctx, err, "Budget advice generation failed", slog.String("user_id", userID))
		return nil, err
	}
	structured := jsonx.Extract(raw)
	if structured == nil {
		s.LogWarn(ctx, "Budget advice reply had no parseable JSON", slog.String("user_id", userID))
	}
	return &dto.BudgetAdviceResponse{Raw: strings.TrimSpace(raw), Structured: structured}, nil
}

// formatHistory renders earlier turns as "User:" and "AI:" lines.
func formatHistory(history []dto.ChatMessage) string {
	if len(history) == 0 {
		return "(none)"
	}
	var b strings.Builder
	for _, h := range history {
		speaker := "AI"
		if h.Role == "user" {
			speaker = "User"
		}
		fmt.Fprintf(&b, "%s: %s\n", speaker, strings.TrimSpace(h.Content))
	}
	return strings.TrimRight(b.String(), "\n")
}

type budgetChatContext struct {
	Transactions []transactionContext `json:"transactions"`
	Budgets      []budgetContext      `json:"budgets"`
}

type budgetContext struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Period   string `json:"period"`
}

// ChatBudgetAdvisor answers a follow-up question from the user's recent transactions
// and budgets, carrying the earlier turns of the conversation.
func (s *aiService) ChatBudgetAdvisor(ctx context.Context, userID string, req dto.BudgetChatRequest) (string, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return "", apperrors.NewFieldValidationError(aiResource, "message", "Message is required")
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	from := s.now().AddDate(0, 0, -budgetChatWindowDays)
	txns, err := s.transactionRepo.ListTransactions(ctx, userID, domain.TransactionFilter{From: &from, Limit: budgetChatTransactions})
	if err != nil {
		return "", err
	}
	budgets, err := s.budgetRepo.ListBudgets(ctx, userID, nil)
	if err != nil {
		return "", err
	}

	data := budgetChatContext{
		Transactions: make([]transactionContext, len(txns)),
		Budgets:      make([]budgetContext, len(budgets)),
	}
	for i, t := range txns {
		data.Transactions[i] = transactionContext{
			ID:          t.TransactionID,
			Date:        t.Date.Format(time.DateOnly),
			Amount:      t.Amount.String(),
			Currency:    t.Currency,
			Type:        string(t.Type),
			Category:    string(t.Category),
			Description: t.Description,
		}
	}
	for i, b := range budgets {
		data.Budgets[i] = budgetContext{Category: string(b.Category), Amount: b.Amount.String(), Period: string(b.Period)}
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return "", err
	}

	answer, err := s.generator.Generate(ctx, fmt.Sprintf(budgetChatPrompt, user.BaseCurrency, payload, formatHistory(req.History), message))
	if err != nil {
		s.LogError(ctx, err, "Budget chat failed", slog.String("user_id", userID))
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// ResolveGoalConflict puts the proposed goal next to the user's current obligations
// and asks for a way to fit it in.
func (s *aiService) ResolveGoalConflict(ctx context.Context, userID string, req dto.ResolveGoalConflictRequest) (*dto.ResolveGoalConflictResponse, error) {
	message := strings.TrimSpace(req.UserMessage)
	switch {
	case message == "":
		return nil, apperrors.NewFieldValidationError(aiResource, "userMessage", "User message is required")
	case strings.TrimSpace(req.ConflictingGoal.Name) == "":
		return nil, apperrors.NewFieldValidationError(aiResource, "conflictingGoal.name", "Goal name is required")
	case req.ConflictingGoal.TargetAmount.Sign() <= 0:
		return nil, apperrors.NewFieldValidationError(aiResource, "conflictingGoal.targetAmount", "Target amount must be positive")
	case req.ConflictingGoal.TargetDate.IsZero():
		return nil, apperrors.NewFieldValidationError(aiResource, "conflictingGoal.targetDate", "Target date is required")
	}

	conflicts, err := s.goals.CheckGoalConflicts(ctx, userID)
	if err != nil {
		return nil, err
	}
	obligations, err := json.Marshal(dto.ToGoalConflictResponse(conflicts))
	if err != nil {
		return nil, err
	}
	goal, err := json.Marshal(map[string]string{
		"name":         strings.TrimSpace(req.ConflictingGoal.Name),
		"targetAmount": req.ConflictingGoal.TargetAmount.String(),
		"targetDate":   req.ConflictingGoal.TargetDate.UTC().Format(time.DateOnly),
	})
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(goalConflictPrompt, conflicts.Currency, obligations, goal, formatHistory(req.History), message)
	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.LogError(ctx, err, "Goal conflict resolution failed", slog.String("user_id", userID))
		return nil, err
	}
	raw = strings.TrimSpace(raw)

	resp := &dto.ResolveGoalConflictResponse{Message: raw, Raw: raw}
	reply := jsonx.Extract(raw)
	if reply == nil {
		s.LogWarn(ctx, "Goal resolver reply had no parseable JSON", slog.String("user_id", userID))
		return resp, nil
	}
	if text, ok := reply["message"].(string); ok && strings.TrimSpace(text) != "" {
		resp.Message = strings.TrimSpace(text)
	}
	resp.Proposal = parseGoalProposal(reply["proposal"])
	return resp, nil
}

// parseGoalProposal accepts a proposal only when it has a positive amount and a
// YYYY-MM-DD date.
func parseGoalProposal(v any) *dto.GoalProposal {
	fields, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	amount, err := money.From(fields["targetAmount"])
	if err != nil || amount.Sign() <= 0 {
		return nil
	}
	dateText, _ := fields["targetDate"].(string)
	date, err := time.Parse(time.DateOnly, dateText)
	if err != nil {
		return nil
	}
	return &dto.GoalProposal{
		TargetAmount: money.ToFloatLossy(money.Round2(amount)),
		TargetDate:   date.Format(time.DateOnly),
	}
}
