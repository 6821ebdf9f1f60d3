package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"clickup_sync/internal/domain"
	"clickup_sync/internal/source/clickup"
)

type Source interface {
	ID() string
	Name() string
	ListSpaces(ctx context.Context) ([]clickup.Space, error)
	ListFolders(ctx context.Context, spaceID string) ([]clickup.Folder, error)
	ListLists(ctx context.Context, folderID string) ([]clickup.List, error)
	ListTasks(ctx context.Context, listID string) ([]clickup.Task, error)
}

type Sink interface {
	InsertBoards(ctx context.Context, boards []domain.Board) (*domain.InsertResult, error)
	InsertSprints(ctx context.Context, sprints []domain.Sprint) (*domain.InsertResult, error)
	InsertIssues(ctx context.Context, issues []domain.Issue) (*domain.InsertResult, error)
}

type Publisher interface {
	PublishRun(ctx context.Context, stats *domain.SyncStats) error
	Close() error
}
