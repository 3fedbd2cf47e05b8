package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/radarloop/radarloop-backend/internal/data/repos"
	types "github.com/radarloop/radarloop-backend/internal/domain"
	"github.com/radarloop/radarloop-backend/internal/pkg/dbctx"
	pkgerrors "github.com/radarloop/radarloop-backend/internal/pkg/errors"
	"github.com/radarloop/radarloop-backend/internal/pkg/logger"
	"github.com/radarloop/radarloop-backend/internal/signals"
)

// IngestItemInput is the payload from the upstream content-analysis
// provider: already summarized, categorized and base-scored.
type IngestItemInput struct {
	Title      string  `json:"title"`
	Summary    string  `json:"summary"`
	URL        string  `json:"url"`
	Categories string  `json:"categories"`
	Excerpt    string  `json:"excerpt"`
	BaseScore  float64 `json:"base_score"`
}

// ScoredFeedItem pairs a stored item with its personalized score.
type ScoredFeedItem struct {
	Item  types.Item          `json:"item"`
	Score signals.ScoreResult `json:"score"`
}

// TriageResult reports one triage decision and the weight updates that were
// actually persisted for it.
type TriageResult struct {
	Decision *types.Decision       `json:"decision"`
	Applied  []signals.WeightDelta `json:"applied"`
}

type FeedService interface {
	IngestItem(ctx context.Context, userID uuid.UUID, in IngestItemInput) (*types.Item, error)
	Triage(ctx context.Context, userID, itemID uuid.UUID, rawAction string) (*TriageResult, error)
	GetFeed(ctx context.Context, userID uuid.UUID, column string) ([]ScoredFeedItem, error)
	ListDecisions(ctx context.Context, userID uuid.UUID, limit int) ([]types.Decision, error)
}

type feedService struct {
	log          *logger.Logger
	itemRepo     repos.ItemRepo
	decisionRepo repos.DecisionRepo
	signalSvc    SignalService
}

func NewFeedService(
	log *logger.Logger,
	itemRepo repos.ItemRepo,
	decisionRepo repos.DecisionRepo,
	signalSvc SignalService,
) FeedService {
	return &feedService{
		log:          log.With("service", "FeedService"),
		itemRepo:     itemRepo,
		decisionRepo: decisionRepo,
		signalSvc:    signalSvc,
	}
}

func (s *feedService) IngestItem(ctx context.Context, userID uuid.UUID, in IngestItemInput) (*types.Item, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id required: %w", pkgerrors.ErrInvalidArgument)
	}
	if in.Title == "" {
		return nil, fmt.Errorf("item title required: %w", pkgerrors.ErrInvalidArgument)
	}
	if in.BaseScore < 0 || in.BaseScore > 100 {
		return nil, fmt.Errorf("base score %v outside [0,100]: %w", in.BaseScore, pkgerrors.ErrInvalidArgument)
	}

	set := s.signalSvc.ExtractSignals(signals.ExtractInput{
		Title:      in.Title,
		Summary:    in.Summary,
		Categories: in.Categories,
		Excerpt:    in.Excerpt,
	})
	raw, err := signals.NewBundle(set).Encode()
	if err != nil {
		return nil, fmt.Errorf("encode signal bundle: %w", err)
	}

	item := &types.Item{
		UserID:     userID,
		Title:      in.Title,
		Summary:    in.Summary,
		URL:        in.URL,
		Categories: in.Categories,
		Excerpt:    in.Excerpt,
		BaseScore:  in.BaseScore,
		Signals:    datatypes.JSON(raw),
		Column:     "inbox",
	}
	if err := s.itemRepo.Create(dbctx.From(ctx), item); err != nil {
		return nil, err
	}
	return item, nil
}

// Triage validates the action first, records the decision, moves the item to
// the matching board column, and fans out the weight updates. The recorded
// decision carries exactly the updates that were persisted.
func (s *feedService) Triage(ctx context.Context, userID, itemID uuid.UUID, rawAction string) (*TriageResult, error) {
	action, err := signals.ParseAction(rawAction)
	if err != nil {
		return nil, err
	}

	item, err := s.itemRepo.GetByID(dbctx.From(ctx), itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, pkgerrors.ErrNotFound
	}

	set := s.itemSignals(ctx, item)
	applied, err := s.signalSvc.UpdateWeightsFromDecision(ctx, userID, set, action)
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.UpdateColumn(dbctx.From(ctx), itemID, string(action)); err != nil {
		s.log.Warn("failed to move item column", "item_id", itemID, "action", action, "error", err)
	}

	appliedJSON, err := json.Marshal(applied)
	if err != nil {
		appliedJSON = []byte("[]")
	}
	decision := &types.Decision{
		UserID:         userID,
		ItemID:         itemID,
		Action:         string(action),
		OccurredAt:     time.Now().UTC(),
		AppliedUpdates: datatypes.JSON(appliedJSON),
	}
	if err := s.decisionRepo.Create(dbctx.From(ctx), decision); err != nil {
		return nil, err
	}

	return &TriageResult{Decision: decision, Applied: applied}, nil
}

// GetFeed loads the user's weight map once and scores the whole batch
// against it, highest adjusted score first.
func (s *feedService) GetFeed(ctx context.Context, userID uuid.UUID, column string) ([]ScoredFeedItem, error) {
	items, err := s.itemRepo.ListByUser(dbctx.From(ctx), userID, column)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	batch := make([]signals.ItemSignals, len(items))
	for i := range items {
		batch[i] = signals.ItemSignals{
			BaseScore: items[i].BaseScore,
			Set:       s.itemSignals(ctx, &items[i]),
		}
	}

	weights, err := s.signalSvc.LoadWeightMap(ctx, userID)
	if err != nil {
		return nil, err
	}
	results, err := signals.ScoreBatch(ctx, batch, weights)
	if err != nil {
		return nil, err
	}

	out := make([]ScoredFeedItem, len(items))
	for i := range items {
		out[i] = ScoredFeedItem{Item: items[i], Score: results[i]}
	}
	sortFeed(out)
	return out, nil
}

func (s *feedService) ListDecisions(ctx context.Context, userID uuid.UUID, limit int) ([]types.Decision, error) {
	return s.decisionRepo.ListByUser(dbctx.From(ctx), userID, limit)
}

// itemSignals decodes the cached bundle, migrating older schemas forward; a
// missing or unusable bundle falls back to re-extraction rather than failing
// the item.
func (s *feedService) itemSignals(ctx context.Context, item *types.Item) signals.SignalSet {
	if b, ok := signals.DecodeBundle([]byte(item.Signals)); ok {
		if set, err := b.Set(); err == nil {
			return set
		}
	}

	s.log.Debug("signal bundle missing or stale, re-extracting", "item_id", item.ID)
	set := s.signalSvc.ExtractSignals(signals.ExtractInput{
		Title:      item.Title,
		Summary:    item.Summary,
		Categories: item.Categories,
		Excerpt:    item.Excerpt,
	})
	if raw, err := signals.NewBundle(set).Encode(); err == nil {
		if err := s.itemRepo.UpdateSignals(dbctx.From(ctx), item.ID, datatypes.JSON(raw)); err != nil {
			s.log.Debug("failed to refresh signal bundle", "item_id", item.ID, "error", err)
		}
	}
	return set
}

func sortFeed(items []ScoredFeedItem) {
	// Stable by adjusted score descending; the repo already returns newest
	// first, which becomes the tiebreak.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score.AdjustedScore > items[j].Score.AdjustedScore
	})
}
