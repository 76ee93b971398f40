package services

import (
	"context"
	"fmt"

	"budzet/internal/amqp"
	"budzet/internal/backend"
	"budzet/internal/core"
	"budzet/internal/log"
)

// EventPublisher is implemented by *amqp.Client.
type EventPublisher interface {
	PublishTransactionEvent(ctx context.Context, evt *amqp.TransactionEvent) error
}

// TransactionInput is the add/edit form as submitted.
type TransactionInput struct {
	Type        string `validate:"required"`
	Category    string
	Amount      string `validate:"required"`
	Description string
	Receipt     string
}

// TransactionService enforces ownership on every read and write.
type TransactionService struct {
	store  backend.TransactionStore
	events EventPublisher
	logger *log.Logger
	audit  *log.StructuredLogger
}

// NewTransactionService wires the store and an optional event publisher.
// Pass a nil events to disable publication.
func NewTransactionService(store backend.TransactionStore, events EventPublisher, logger *log.Logger) *TransactionService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentTransaction)
	return &TransactionService{
		store:  store,
		events: events,
		logger: logger,
		audit:  log.NewStructuredLogger(logger),
	}
}

func (s *TransactionService) List(ctx context.Context, user core.User) ([]core.Transaction, error) {
	txs, err := s.store.ListTransactions(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

func (s *TransactionService) Create(ctx context.Context, user core.User, in TransactionInput) (core.Transaction, error) {
	t, err := in.apply(core.Transaction{UserID: user.ID})
	if err != nil {
		return core.Transaction{}, err
	}

	t, err = s.store.CreateTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	s.audit.LogTransaction(ctx, log.OpCreate, user.ID, t.ID, t.Type.String(), t.Category, t.Amount.Cents)
	s.publish(ctx, amqp.ActionCreated, t)
	return t, nil
}

// Get returns core.ErrNotFound for unknown ids and core.ErrForbidden for
// transactions owned by someone else.
func (s *TransactionService) Get(ctx context.Context, user core.User, id int64) (core.Transaction, error) {
	t, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		return core.Transaction{}, err
	}
	if !t.OwnedBy(user) {
		s.logger.WarnContext(ctx, "Access to foreign transaction denied",
			log.FieldUserID, user.ID,
			log.FieldTransactionID, id)
		return core.Transaction{}, fmt.Errorf("transaction %d: %w", id, core.ErrForbidden)
	}
	return t, nil
}

// Update overwrites every editable field. Ownership and input are checked
// before anything is written.
func (s *TransactionService) Update(ctx context.Context, user core.User, id int64, in TransactionInput) (core.Transaction, error) {
	cur, err := s.Get(ctx, user, id)
	if err != nil {
		return core.Transaction{}, err
	}

	t, err := in.apply(cur)
	if err != nil {
		return core.Transaction{}, err
	}

	if err := s.store.UpdateTransaction(ctx, t); err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}

	s.audit.LogTransaction(ctx, log.OpUpdate, user.ID, t.ID, t.Type.String(), t.Category, t.Amount.Cents)
	s.publish(ctx, amqp.ActionUpdated, t)
	return t, nil
}

func (s *TransactionService) Delete(ctx context.Context, user core.User, id int64) error {
	t, err := s.Get(ctx, user, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	s.audit.LogTransaction(ctx, log.OpDelete, user.ID, t.ID, t.Type.String(), t.Category, t.Amount.Cents)
	s.publish(ctx, amqp.ActionDeleted, t)
	return nil
}

// publish is best effort; the write has already succeeded.
func (s *TransactionService) publish(ctx context.Context, action amqp.Action, t core.Transaction) {
	if s.events == nil {
		return
	}
	evt := amqp.NewTransactionEvent(action, t.ID, t.UserID)
	if err := s.events.PublishTransactionEvent(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish transaction event",
			log.FieldError, err,
			log.FieldTransactionID, t.ID,
			"action", action)
	}
}

// apply validates the input and copies it onto t.
func (in TransactionInput) apply(t core.Transaction) (core.Transaction, error) {
	if err := validateStruct(in); err != nil {
		return core.Transaction{}, err
	}
	kind, err := core.ParseKind(in.Type)
	if err != nil {
		return core.Transaction{}, err
	}
	amount, err := core.ParseAmount(in.Amount)
	if err != nil {
		return core.Transaction{}, err
	}

	t.Type = kind
	t.Category = in.Category
	t.Amount = amount
	t.Description = in.Description
	t.Receipt = in.Receipt
	return t, nil
}
