package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"clickup_sync/internal/domain"
	"clickup_sync/internal/mapper"
)

// SyncService walks the ClickUp hierarchy, maps every record and loads the
// result into the destination tables.
type SyncService struct {
	source    Source
	mapper    *mapper.Mapper
	sink      Sink
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewSyncService(
	source Source,
	m *mapper.Mapper,
	sink Sink,
	publisher Publisher,
	logger *slog.Logger,
) *SyncService {
	return &SyncService{
		source:    source,
		mapper:    m,
		sink:      sink,
		publisher: publisher,
		logger:    logger.With("source", source.ID()),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// batch buffers every mapped row of one run.
type batch struct {
	boards  []domain.Board
	sprints []domain.Sprint
	issues  []domain.Issue
}

// Sync runs one full refresh. On failure the statistics gathered so far are
// returned alongside the error.
func (s *SyncService) Sync(ctx context.Context) (*domain.SyncStats, error) {
	startTime := time.Now()
	runAt := s.now()
	stats := &domain.SyncStats{StartedAt: runAt}

	s.logger.Info("starting full sync",
		"source_name", s.source.Name(),
		"org_id", s.mapper.OrgID(),
	)

	b, err := s.collect(ctx, runAt, stats)
	if err != nil {
		stats.Duration = time.Since(startTime)
		return stats, fmt.Errorf("fetch hierarchy: %w", err)
	}

	stats.Boards = len(b.boards)
	stats.Sprints = len(b.sprints)
	stats.Issues = len(b.issues)

	s.logger.Info("sync summary",
		"spaces", stats.Spaces,
		"boards", stats.Boards,
		"sprints", stats.Sprints,
		"issues", stats.Issues,
	)

	loads := []struct {
		phase  string
		entity string
		count  int
		insert func(context.Context) (*domain.InsertResult, error)
	}{
		{"2/4", "boards", len(b.boards), func(ctx context.Context) (*domain.InsertResult, error) {
			return s.sink.InsertBoards(ctx, b.boards)
		}},
		{"3/4", "sprints", len(b.sprints), func(ctx context.Context) (*domain.InsertResult, error) {
			return s.sink.InsertSprints(ctx, b.sprints)
		}},
		{"4/4", "issues", len(b.issues), func(ctx context.Context) (*domain.InsertResult, error) {
			return s.sink.InsertIssues(ctx, b.issues)
		}},
	}

	for _, l := range loads {
		if l.count == 0 {
			continue
		}

		s.logger.Info("inserting into database", "phase", l.phase, "entity", l.entity, "count", l.count)

		res, err := l.insert(ctx)
		if err != nil {
			stats.Duration = time.Since(startTime)
			return stats, fmt.Errorf("insert %s: %w", l.entity, err)
		}
		stats.Results = append(stats.Results, *res)

		s.logger.Info("inserted",
			"entity", l.entity,
			"inserted", res.Inserted,
			"failed", len(res.Failures),
		)
	}

	stats.Duration = time.Since(startTime)

	if s.publisher != nil {
		if err := s.publisher.PublishRun(ctx, stats); err != nil {
			s.logger.Warn("failed to publish run report", "error", err)
		} else {
			stats.Published = true
		}
	}

	s.logger.Info("sync completed",
		"inserted", stats.Inserted(),
		"failed", stats.Failed(),
		"published", stats.Published,
		"duration", stats.Duration,
	)

	return stats, nil
}

// collect fetches spaces, folders, lists and tasks depth-first and maps each
// record as soon as it arrives.
func (s *SyncService) collect(ctx context.Context, runAt time.Time, stats *domain.SyncStats) (*batch, error) {
	b := &batch{}

	s.logger.Info("fetching boards", "phase", "1/4")

	spaces, err := s.source.ListSpaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("list spaces: %w", err)
	}
	stats.Spaces = len(spaces)
	s.logger.Info("found spaces", "count", len(spaces))

	for _, space := range spaces {
		spaceID := space.ID.String()

		folders, err := s.source.ListFolders(ctx, spaceID)
		if err != nil {
			return nil, fmt.Errorf("list folders of space %s: %w", spaceID, err)
		}
		s.logger.Info("processing space",
			"space_id", spaceID,
			"space", space.Name.String(),
			"folders", len(folders),
		)

		for _, folder := range folders {
			folderID := folder.ID.String()
			b.boards = append(b.boards, s.mapper.Board(folder, spaceID, runAt))

			lists, err := s.source.ListLists(ctx, folderID)
			if err != nil {
				return nil, fmt.Errorf("list lists of folder %s: %w", folderID, err)
			}
			s.logger.Info("fetched sprints from folder",
				"folder_id", folderID,
				"folder", folder.Name.String(),
				"lists", len(lists),
			)

			for _, list := range lists {
				listID := list.ID.String()
				b.sprints = append(b.sprints, s.mapper.Sprint(list, folderID, runAt))

				tasks, err := s.source.ListTasks(ctx, listID)
				if err != nil {
					return nil, fmt.Errorf("list tasks of list %s: %w", listID, err)
				}
				s.logger.Info("fetched issues from sprint",
					"list_id", listID,
					"list", list.Name.String(),
					"tasks", len(tasks),
				)

				for _, task := range tasks {
					if n := len(task.Assignees); n > 1 {
						s.logger.Debug("keeping first assignee only",
							"task_id", task.ID.String(),
							"assignees", n,
						)
					}
					b.issues = append(b.issues, s.mapper.Issue(task, folderID, listID, spaceID, runAt))
				}
			}
		}
	}

	return b, nil
}
