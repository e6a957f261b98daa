package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/plexdi/studio/modules/commissions/domain/aggregates/commission"
	"github.com/plexdi/studio/modules/commissions/infrastructure/cache"
	"github.com/plexdi/studio/modules/commissions/infrastructure/studioapi"
	"github.com/plexdi/studio/pkg/composables"
	"github.com/plexdi/studio/pkg/eventbus"
	"github.com/plexdi/studio/pkg/metrics"
)

// Counts holds the aggregate figures shown at the top of the dashboard.
type Counts struct {
	Total      int
	Queued     int
	InProgress int
	Completed  int
}

// SyncService keeps the admin panel's commission cache aligned with the
// remote backend. Mutations are applied to the cache first so the panel
// responds immediately, then pushed to the server; a server failure
// triggers the mutation's compensating action so the cache never stays
// permanently optimistic:
//
//   - status change   → revert to the previous status
//   - delete          → reinsert the record at its old position
//   - create          → discard the temporary record
//
// A revision mismatch from the cache means another admin action landed
// in between; the service resolves it with a forced refresh and reports
// ErrStaleView so the caller re-reads before retrying.
type SyncService struct {
	client    studioapi.Client
	cache     *cache.CommissionCache
	publisher eventbus.EventBus
}

var ErrStaleView = errors.New("commission list changed, refresh before retrying")

// publishCompensation uses the error-returning publish so a failing
// compensation handler surfaces in the logs instead of vanishing.
func (s *SyncService) publishCompensation(logger *logrus.Entry, event *commission.CompensatedEvent) {
	if err := s.publisher.PublishE(event); err != nil && !errors.Is(err, eventbus.ErrNoSubscribers) {
		logger.WithError(err).WithField("action", event.Action).Error("compensation event handler failed")
	}
}

func NewSyncService(client studioapi.Client, commissionCache *cache.CommissionCache, publisher eventbus.EventBus) *SyncService {
	return &SyncService{
		client:    client,
		cache:     commissionCache,
		publisher: publisher,
	}
}

// Refresh replaces the whole cache with the server's current list. A
// refresh always wins over in-flight optimistic state.
func (s *SyncService) Refresh(ctx context.Context) ([]commission.Commission, uint64, error) {
	items, err := s.client.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("refresh commissions: %w", err)
	}
	revision := s.cache.ReplaceAll(items)
	metrics.CacheRefreshes.Inc()
	composables.UseLogger(ctx).WithField("count", len(items)).Info("commission cache refreshed")
	return items, revision, nil
}

// List returns the cached view without touching the network, loading it
// from the server only when the cache has never been filled.
func (s *SyncService) List(ctx context.Context) ([]commission.Commission, uint64, error) {
	items, revision := s.cache.All()
	if revision == 0 {
		return s.Refresh(ctx)
	}
	return items, revision, nil
}

func (s *SyncService) Counts(ctx context.Context) (Counts, error) {
	items, _, err := s.List(ctx)
	if err != nil {
		return Counts{}, err
	}
	counts := Counts{Total: len(items)}
	for _, item := range items {
		switch item.Status() {
		case commission.StatusQueued:
			counts.Queued++
		case commission.StatusInProgress:
			counts.InProgress++
		case commission.StatusCompleted:
			counts.Completed++
		}
	}
	return counts, nil
}

// UpdateStatus patches the cache immediately, then the server. On a
// server failure the local status is reverted to what it was.
func (s *SyncService) UpdateStatus(ctx context.Context, atRevision uint64, id string, status commission.Status) error {
	logger := composables.UseLogger(ctx).WithField("commission_id", id)

	previous, _, err := s.cache.SetStatus(atRevision, id, status)
	if errors.Is(err, cache.ErrRevisionMismatch) {
		logger.Warn("stale status update, forcing refresh")
		if _, _, refreshErr := s.Refresh(ctx); refreshErr != nil {
			return refreshErr
		}
		return ErrStaleView
	}
	if err != nil {
		return err
	}

	if err := s.client.UpdateStatus(ctx, id, status); err != nil {
		if _, _, revertErr := s.cache.SetStatus(s.cache.Revision(), id, previous); revertErr != nil {
			logger.WithError(revertErr).Error("failed to revert optimistic status change")
		}
		s.publishCompensation(logger, &commission.CompensatedEvent{ID: id, Action: "status_revert", Reason: err.Error()})
		return fmt.Errorf("update commission status: %w", err)
	}

	s.publisher.Publish(&commission.StatusChangedEvent{ID: id, From: previous, To: status})
	return nil
}

// Delete removes the record locally, then issues the server DELETE. On
// failure the record is put back where it was.
func (s *SyncService) Delete(ctx context.Context, atRevision uint64, id string) error {
	logger := composables.UseLogger(ctx).WithField("commission_id", id)

	removed, position, _, err := s.cache.Remove(atRevision, id)
	if errors.Is(err, cache.ErrRevisionMismatch) {
		logger.Warn("stale delete, forcing refresh")
		if _, _, refreshErr := s.Refresh(ctx); refreshErr != nil {
			return refreshErr
		}
		return ErrStaleView
	}
	if err != nil {
		return err
	}

	if err := s.client.Delete(ctx, id); err != nil {
		s.cache.Reinsert(removed, position)
		s.publishCompensation(logger, &commission.CompensatedEvent{ID: id, Action: "delete_reinsert", Reason: err.Error()})
		return fmt.Errorf("delete commission: %w", err)
	}

	s.publisher.Publish(&commission.DeletedEvent{ID: id})
	return nil
}

// Create inserts a fully-formed optimistic record at the head of the
// list, POSTs to the server, then swaps in the server-confirmed record.
// A rejected create discards the temporary record entirely.
func (s *SyncService) Create(ctx context.Context, atRevision uint64, params studioapi.CreateParams) (commission.Commission, error) {
	logger := composables.UseLogger(ctx)

	optimistic := commission.New(
		params.Name,
		params.Email,
		params.Kind,
		commission.WithDiscord(params.Discord),
		commission.WithDetails(params.Details),
	)

	if _, err := s.cache.InsertOptimistic(atRevision, optimistic); err != nil {
		if errors.Is(err, cache.ErrRevisionMismatch) {
			logger.Warn("stale create, forcing refresh")
			if _, _, refreshErr := s.Refresh(ctx); refreshErr != nil {
				return nil, refreshErr
			}
			return nil, ErrStaleView
		}
		return nil, err
	}

	confirmed, err := s.client.Create(ctx, params)
	if err != nil {
		if _, discardErr := s.cache.Discard(optimistic.ID()); discardErr != nil {
			logger.WithError(discardErr).Error("failed to discard optimistic commission")
		}
		s.publishCompensation(logger, &commission.CompensatedEvent{ID: optimistic.ID(), Action: "create_discard", Reason: err.Error()})
		return nil, fmt.Errorf("create commission: %w", err)
	}

	if _, err := s.cache.Confirm(optimistic.ID(), confirmed); err != nil {
		logger.WithError(err).Warn("optimistic commission vanished before confirmation")
	}
	s.publisher.Publish(&commission.CreatedEvent{Result: confirmed})
	return confirmed, nil
}
