package unitofwork

import (
	"context"

	"ai-workspace-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	WorkspaceRepository() contract.WorkspaceRepository
	WorkspaceMemberRepository() contract.WorkspaceMemberRepository
	ActivityRepository() contract.ActivityRepository
	NoteRepository() contract.NoteRepository
	DocumentRepository() contract.DocumentRepository
	CardRepository() contract.CardRepository
	CardReactionRepository() contract.CardReactionRepository
	ChatRepository() contract.ChatRepository
	ChatParticipantRepository() contract.ChatParticipantRepository
	ChatMessageRepository() contract.ChatMessageRepository
}
