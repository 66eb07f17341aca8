// Package testsupport provides in-memory implementations of the audit
// stores for tests that exercise the pipeline without a database.
package testsupport

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/intakehq/intake/internal/actions"
	"github.com/intakehq/intake/internal/classifications"
	"github.com/intakehq/intake/internal/decisions"
	"github.com/intakehq/intake/internal/results"
	"github.com/intakehq/intake/internal/traces"
	"github.com/intakehq/intake/pkg/pagination"
)

func marshal(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	return data, nil
}

// ClassificationStore is an in-memory classifications.System.
type ClassificationStore struct {
	mu      sync.Mutex
	Records []classifications.Classification
	Err     error
}

func (s *ClassificationStore) Handler() *classifications.Handler { return nil }

func (s *ClassificationStore) List(
	_ context.Context,
	page pagination.PageRequest,
	_ classifications.Filters,
) (*pagination.PageResult[classifications.Classification], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := pagination.NewPageResult(s.Records, len(s.Records), page.Page, page.PageSize)
	return &result, nil
}

func (s *ClassificationStore) Find(_ context.Context, id uuid.UUID) (*classifications.Classification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Records {
		if s.Records[i].ID == id {
			return &s.Records[i], nil
		}
	}
	return nil, classifications.ErrNotFound
}

func (s *ClassificationStore) Create(
	_ context.Context,
	cmd classifications.CreateCommand,
) (*classifications.Classification, error) {
	if s.Err != nil {
		return nil, s.Err
	}

	metadata, err := marshal(cmd.Metadata)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	record := classifications.Classification{
		ID:             uuid.New(),
		Format:         cmd.Format,
		Intent:         cmd.Intent,
		ContentPreview: cmd.ContentPreview,
		Confidence:     cmd.Confidence,
		Metadata:       metadata,
		CreatedAt:      time.Now().UTC(),
	}
	s.Records = append(s.Records, record)
	return &record, nil
}

// ResultStore is an in-memory results.System.
type ResultStore struct {
	mu      sync.Mutex
	Records []results.AgentResult
	Err     error
}

func (s *ResultStore) Handler() *results.Handler { return nil }

func (s *ResultStore) List(
	_ context.Context,
	page pagination.PageRequest,
	_ results.Filters,
) (*pagination.PageResult[results.AgentResult], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := pagination.NewPageResult(s.Records, len(s.Records), page.Page, page.PageSize)
	return &result, nil
}

func (s *ResultStore) Find(_ context.Context, id uuid.UUID) (*results.AgentResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Records {
		if s.Records[i].ID == id {
			return &s.Records[i], nil
		}
	}
	return nil, results.ErrNotFound
}

func (s *ResultStore) FindByClassification(
	_ context.Context,
	classificationID uuid.UUID,
) (*results.AgentResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Records {
		if s.Records[i].ClassificationID == classificationID {
			return &s.Records[i], nil
		}
	}
	return nil, results.ErrNotFound
}

func (s *ResultStore) Create(_ context.Context, cmd results.CreateCommand) (*results.AgentResult, error) {
	if s.Err != nil {
		return nil, s.Err
	}

	data, err := marshal(cmd.ResultData)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	record := results.AgentResult{
		ID:                 uuid.New(),
		ClassificationID:   cmd.ClassificationID,
		AgentType:          cmd.AgentType,
		ResultData:         data,
		ProcessingDuration: cmd.ProcessingDuration,
		CreatedAt:          time.Now().UTC(),
	}
	s.Records = append(s.Records, record)
	return &record, nil
}

// ActionStore is an in-memory actions.System.
type ActionStore struct {
	mu      sync.Mutex
	Records []actions.ActionResult
	Err     error
}

func (s *ActionStore) Handler() *actions.Handler { return nil }

func (s *ActionStore) List(
	_ context.Context,
	page pagination.PageRequest,
	_ actions.Filters,
) (*pagination.PageResult[actions.ActionResult], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := pagination.NewPageResult(s.Records, len(s.Records), page.Page, page.PageSize)
	return &result, nil
}

func (s *ActionStore) Find(_ context.Context, id uuid.UUID) (*actions.ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Records {
		if s.Records[i].ID == id {
			return &s.Records[i], nil
		}
	}
	return nil, actions.ErrNotFound
}

func (s *ActionStore) FindByAgentResult(
	_ context.Context,
	agentResultID uuid.UUID,
) (*actions.ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Records {
		if s.Records[i].AgentResultID == agentResultID {
			return &s.Records[i], nil
		}
	}
	return nil, actions.ErrNotFound
}

func (s *ActionStore) Create(_ context.Context, cmd actions.CreateCommand) (*actions.ActionResult, error) {
	if s.Err != nil {
		return nil, s.Err
	}

	triggered, err := marshal(cmd.ActionsTriggered)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	record := actions.ActionResult{
		ID:               uuid.New(),
		AgentResultID:    cmd.AgentResultID,
		ActionsTriggered: triggered,
		SuccessCount:     cmd.SuccessCount,
		FailureCount:     cmd.FailureCount,
		CreatedAt:        time.Now().UTC(),
	}
	s.Records = append(s.Records, record)
	return &record, nil
}

// TraceStore is an in-memory traces.System.
type TraceStore struct {
	mu      sync.Mutex
	Records []traces.Trace
	Err     error
}

func (s *TraceStore) Handler() *traces.Handler { return nil }

func (s *TraceStore) List(
	_ context.Context,
	page pagination.PageRequest,
	_ traces.Filters,
) (*pagination.PageResult[traces.Trace], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := pagination.NewPageResult(s.Records, len(s.Records), page.Page, page.PageSize)
	return &result, nil
}

func (s *TraceStore) Find(_ context.Context, id uuid.UUID) (*traces.Trace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Records {
		if s.Records[i].ID == id {
			return &s.Records[i], nil
		}
	}
	return nil, traces.ErrNotFound
}

func (s *TraceStore) FindDetail(context.Context, uuid.UUID) (*traces.Detail, error) {
	return nil, traces.ErrNotFound
}

func (s *TraceStore) ListDetails(
	_ context.Context,
	page pagination.PageRequest,
) (*pagination.PageResult[traces.Detail], error) {
	result := pagination.NewPageResult([]traces.Detail{}, 0, page.Page, page.PageSize)
	return &result, nil
}

func (s *TraceStore) Create(_ context.Context, cmd traces.CreateCommand) (*traces.Trace, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if cmd.ClassificationID == uuid.Nil || cmd.AgentResultID == uuid.Nil || cmd.ActionResultID == uuid.Nil {
		return nil, traces.ErrMissingLink
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	record := traces.Trace{
		ID:                  uuid.New(),
		ClassificationID:    cmd.ClassificationID,
		AgentResultID:       cmd.AgentResultID,
		ActionResultID:      cmd.ActionResultID,
		Status:              cmd.Status,
		TotalProcessingTime: cmd.TotalProcessingTime,
		CreatedAt:           time.Now().UTC(),
	}
	s.Records = append(s.Records, record)
	return &record, nil
}

// DecisionStore is an in-memory decisions.System.
type DecisionStore struct {
	mu      sync.Mutex
	Records []decisions.DecisionLog
	Err     error
}

func (s *DecisionStore) Handler() *decisions.Handler { return nil }

func (s *DecisionStore) List(
	_ context.Context,
	page pagination.PageRequest,
	_ decisions.Filters,
) (*pagination.PageResult[decisions.DecisionLog], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := pagination.NewPageResult(s.Records, len(s.Records), page.Page, page.PageSize)
	return &result, nil
}

func (s *DecisionStore) Find(_ context.Context, id uuid.UUID) (*decisions.DecisionLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Records {
		if s.Records[i].ID == id {
			return &s.Records[i], nil
		}
	}
	return nil, decisions.ErrNotFound
}

func (s *DecisionStore) Create(_ context.Context, cmd decisions.CreateCommand) (*decisions.DecisionLog, error) {
	if s.Err != nil {
		return nil, s.Err
	}

	data, err := marshal(cmd.DecisionData)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	record := decisions.DecisionLog{
		ID:           uuid.New(),
		Component:    cmd.Component,
		DecisionType: cmd.DecisionType,
		DecisionData: data,
		Reasoning:    cmd.Reasoning,
		TraceID:      cmd.TraceID,
		CreatedAt:    time.Now().UTC(),
	}
	s.Records = append(s.Records, record)
	return &record, nil
}
