package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AskRequest is a natural-language question about the user's transactions.
type AskRequest struct {
	Question string `json:"question" binding:"required,max=1000"`
}

// AskResponse carries the assistant's answer.
type AskResponse struct {
	Answer string `json:"answer"`
}

// BudgetAdviceResponse carries the advisor's reply. Structured is set when the reply
// contained parseable JSON.
type BudgetAdviceResponse struct {
	Raw        string         `json:"raw"`
	Structured map[string]any `json:"structured,omitempty"`
}

// ChatMessage is one earlier turn of a conversation with the assistant.
type ChatMessage struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required,max=4000"`
}

// BudgetChatRequest is a follow-up question to the budget advisor.
type BudgetChatRequest struct {
	Message string        `json:"message" binding:"required,max=1000"`
	History []ChatMessage `json:"history" binding:"omitempty,max=20,dive"`
}

// ProposedGoal is the goal the user wants to add.
type ProposedGoal struct {
	Name         string          `json:"name" binding:"required,max=200"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	TargetDate   time.Time       `json:"targetDate" binding:"required"`
}

// ResolveGoalConflictRequest asks the assistant how to fit a new goal into the plan.
type ResolveGoalConflictRequest struct {
	ConflictingGoal ProposedGoal  `json:"conflictingGoal"`
	UserMessage     string        `json:"userMessage" binding:"required,max=1000"`
	History         []ChatMessage `json:"history" binding:"omitempty,max=20,dive"`
}

// GoalProposal is a concrete change the client can apply to the new goal.
type GoalProposal struct {
	TargetAmount float64 `json:"targetAmount"`
	TargetDate   string  `json:"targetDate"`
}

// ResolveGoalConflictResponse carries the resolver's reply. Proposal is nil while the
// conversation is still exploring options or when the reply was not usable JSON.
type ResolveGoalConflictResponse struct {
	Message  string        `json:"message"`
	Proposal *GoalProposal `json:"proposal"`
	Raw      string        `json:"raw"`
}
