package unitofwork

import (
	"context"

	"driven-coach-be/internal/repository/contract"
)

// UnitOfWork scopes the repositories below to one database transaction so a
// turn's facts commit together or not at all.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ConversationStateRepository() contract.ConversationStateRepository
	AnswerRepository() contract.AnswerRepository
	ReplyRepository() contract.ReplyRepository
	CompletionRepository() contract.CompletionRepository
}
