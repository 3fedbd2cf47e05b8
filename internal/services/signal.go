package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/radarloop/radarloop-backend/internal/clients/redis"
	"github.com/radarloop/radarloop-backend/internal/data/repos"
	types "github.com/radarloop/radarloop-backend/internal/domain"
	"github.com/radarloop/radarloop-backend/internal/pkg/dbctx"
	pkgerrors "github.com/radarloop/radarloop-backend/internal/pkg/errors"
	"github.com/radarloop/radarloop-backend/internal/pkg/logger"
	"github.com/radarloop/radarloop-backend/internal/signals"
)

// SignalService is the preference loop's surface: extraction, decision-driven
// weight updates, preference-aware scoring, and the mute/reset operators.
// Extraction and scoring are pure; everything touching the store or cache is
// the asynchronous boundary.
type SignalService interface {
	ExtractSignals(in signals.ExtractInput) signals.SignalSet
	UpdateWeightsFromDecision(ctx context.Context, userID uuid.UUID, set signals.SignalSet, action signals.Action) ([]signals.WeightDelta, error)
	ScoreItems(ctx context.Context, userID uuid.UUID, items []signals.ItemSignals) ([]signals.ScoreResult, error)
	MuteSignal(ctx context.Context, userID uuid.UUID, rawType, rawValue string, muted bool) error
	ResetSignal(ctx context.Context, userID uuid.UUID, rawType, rawValue string) error
	GetWeights(ctx context.Context, userID uuid.UUID) ([]types.UserSignalWeight, error)
	LoadWeightMap(ctx context.Context, userID uuid.UUID) (map[string]signals.WeightRecord, error)
	Dictionary() *signals.Dictionary
}

type signalService struct {
	log        *logger.Logger
	weightRepo repos.WeightRepo
	cache      redis.WeightCache // nil disables caching
	dict       *signals.Dictionary
	extractor  *signals.Extractor
}

func NewSignalService(
	log *logger.Logger,
	weightRepo repos.WeightRepo,
	cache redis.WeightCache,
	dict *signals.Dictionary,
) SignalService {
	return &signalService{
		log:        log.With("service", "SignalService"),
		weightRepo: weightRepo,
		cache:      cache,
		dict:       dict,
		extractor:  signals.NewExtractor(dict),
	}
}

func (s *signalService) Dictionary() *signals.Dictionary { return s.dict }

func (s *signalService) ExtractSignals(in signals.ExtractInput) signals.SignalSet {
	return s.extractor.Extract(in)
}

// UpdateWeightsFromDecision fans out one independent write per extracted key.
// A failed write is logged and skipped, never blocking the remaining keys;
// the returned slice is the authoritative record of what was persisted.
func (s *signalService) UpdateWeightsFromDecision(ctx context.Context, userID uuid.UUID, set signals.SignalSet, action signals.Action) ([]signals.WeightDelta, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id required: %w", pkgerrors.ErrInvalidArgument)
	}
	deltas, err := signals.ComputeDeltas(set, action, s.dict)
	if err != nil {
		return nil, err
	}

	dbc := dbctx.From(ctx)
	applied := make([]signals.WeightDelta, 0, len(deltas))
	for _, d := range deltas {
		if err := s.weightRepo.UpsertAdd(dbc, userID, d.Key, d.Delta); err != nil {
			s.log.Warn("weight write failed, skipping key",
				"user_id", userID, "key", d.Key.String(), "delta", d.Delta, "error", err)
			continue
		}
		applied = append(applied, d)
	}

	s.invalidate(ctx, userID)
	return applied, nil
}

func (s *signalService) ScoreItems(ctx context.Context, userID uuid.UUID, items []signals.ItemSignals) ([]signals.ScoreResult, error) {
	weights, err := s.LoadWeightMap(ctx, userID)
	if err != nil {
		return nil, err
	}
	return signals.ScoreBatch(ctx, items, weights)
}

func (s *signalService) MuteSignal(ctx context.Context, userID uuid.UUID, rawType, rawValue string, muted bool) error {
	key, err := normalizeOperand(userID, rawType, rawValue)
	if err != nil {
		return err
	}
	if err := s.weightRepo.SetMuted(dbctx.From(ctx), userID, key, muted); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *signalService) ResetSignal(ctx context.Context, userID uuid.UUID, rawType, rawValue string) error {
	key, err := normalizeOperand(userID, rawType, rawValue)
	if err != nil {
		return err
	}
	if err := s.weightRepo.ResetWeight(dbctx.From(ctx), userID, key); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *signalService) GetWeights(ctx context.Context, userID uuid.UUID) ([]types.UserSignalWeight, error) {
	return s.weightRepo.GetByUserID(dbctx.From(ctx), userID)
}

// LoadWeightMap loads a user's full weight map, once per scoring batch.
// Cache hits skip the store entirely; misses repopulate the cache.
func (s *signalService) LoadWeightMap(ctx context.Context, userID uuid.UUID) (map[string]signals.WeightRecord, error) {
	if s.cache != nil {
		if weights, ok := s.cache.Get(ctx, userID); ok {
			return weights, nil
		}
	}

	rows, err := s.weightRepo.GetByUserID(dbctx.From(ctx), userID)
	if err != nil {
		return nil, err
	}
	weights := make(map[string]signals.WeightRecord, len(rows))
	for _, row := range rows {
		weights[row.SignalKey] = signals.WeightRecord{
			Weight: row.Weight,
			Muted:  row.Muted(),
		}
	}

	if s.cache != nil {
		s.cache.Set(ctx, userID, weights)
	}
	return weights, nil
}

func (s *signalService) invalidate(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.log.Warn("weight cache invalidation failed", "user_id", userID, "error", err)
	}
}

func normalizeOperand(userID uuid.UUID, rawType, rawValue string) (signals.SignalKey, error) {
	if userID == uuid.Nil {
		return signals.SignalKey{}, fmt.Errorf("user id required: %w", pkgerrors.ErrInvalidArgument)
	}
	typ, err := signals.ParseType(rawType)
	if err != nil {
		return signals.SignalKey{}, err
	}
	if typ == signals.TypeContext {
		// Context values embed their component keys; they are passed through
		// verbatim, not value-normalized.
		key := signals.SignalKey{Type: typ, Value: rawValue}
		if _, _, ok := signals.SplitContextKey(key); !ok {
			return signals.SignalKey{}, fmt.Errorf("malformed context value %q: %w", rawValue, pkgerrors.ErrInvalidArgument)
		}
		return key, nil
	}
	key := signals.Normalize(typ, rawValue)
	if key.Value == "" {
		return signals.SignalKey{}, fmt.Errorf("empty signal value: %w", pkgerrors.ErrInvalidArgument)
	}
	return key, nil
}
