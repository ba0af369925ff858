// Package service implements the healthdesk use cases on top of the
// repository, the triage policy and the LLM dispatcher.
package service

import (
	"github.com/xiaot623/healthdesk/internal/adapter/llm"
	"github.com/xiaot623/healthdesk/internal/prompt"
	"github.com/xiaot623/healthdesk/internal/repository"
	"github.com/xiaot623/healthdesk/policy"
)

type Service struct {
	store      repository.Store
	triage     *policy.Engine
	prompts    *prompt.Builder
	dispatcher *llm.Dispatcher
}

func New(store repository.Store, triage *policy.Engine, prompts *prompt.Builder, dispatcher *llm.Dispatcher) *Service {
	return &Service{
		store:      store,
		triage:     triage,
		prompts:    prompts,
		dispatcher: dispatcher,
	}
}
