// Package engine wires the query pipeline behind one facade: resolve the
// query against session history, extract entities, classify intent, retrieve
// from the current snapshot and assemble the structured context.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fplchat/query-engine/internal/assemble"
	"github.com/fplchat/query-engine/internal/cache"
	"github.com/fplchat/query-engine/internal/dictionary"
	"github.com/fplchat/query-engine/internal/extract"
	"github.com/fplchat/query-engine/internal/history"
	"github.com/fplchat/query-engine/internal/intent"
	"github.com/fplchat/query-engine/internal/knowledge"
	"github.com/fplchat/query-engine/internal/observability"
	"github.com/fplchat/query-engine/internal/resolver"
	"github.com/fplchat/query-engine/internal/retrieval"
	"github.com/fplchat/query-engine/internal/snapshot"
)

// Options configures the engine. Zero values fall back to the defaults the
// heuristics were tuned with.
type Options struct {
	Snapshots *snapshot.Store
	History   history.Store
	Cache     cache.Client
	Logger    *observability.Logger

	HistoryDepth   int
	TopN           int
	MaxTopN        int
	FuzzyThreshold float64
	CacheResults   bool
	CacheTTL       time.Duration
}

// Response is one answered query.
type Response struct {
	SessionID     string                     `json:"session_id"`
	TurnIndex     int                        `json:"turn_index"`
	Query         string                     `json:"query"`
	ResolvedQuery string                     `json:"resolved_query"`
	Resolved      bool                       `json:"resolved"`
	Generation    string                     `json:"generation"`
	Cached        bool                       `json:"cached"`
	Context       assemble.StructuredContext `json:"context"`
}

// Engine is the public facade. Safe for concurrent use; each request reads
// exactly one snapshot generation.
type Engine struct {
	snapshots  *snapshot.Store
	history    history.Store
	cache      cache.Client
	kb         *knowledge.Base
	classifier *intent.Classifier
	retriever  *retrieval.Engine
	resolver   *resolver.Resolver
	logger     *observability.Logger

	fuzzyThreshold float64
	cacheResults   bool
	cacheTTL       time.Duration

	// Compiled dictionary for the current snapshot generation. Rebuilt
	// lazily after a refresh swaps the snapshot.
	mu        sync.Mutex
	dict      *dictionary.Dictionary
	extractor *extract.Extractor
}

// New builds an engine from options.
func New(opts Options) (*Engine, error) {
	if opts.Snapshots == nil {
		return nil, fmt.Errorf("snapshot store is required")
	}
	if opts.History == nil {
		opts.History = history.NewMemoryStore(opts.HistoryDepth)
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewMemoryClient(0)
	}
	if opts.Logger == nil {
		opts.Logger = observability.DefaultLogger()
	}
	if opts.HistoryDepth <= 0 {
		opts.HistoryDepth = 3
	}
	if opts.TopN <= 0 {
		opts.TopN = 5
	}
	if opts.MaxTopN < opts.TopN {
		opts.MaxTopN = 2 * opts.TopN
	}
	if opts.FuzzyThreshold <= 0 || opts.FuzzyThreshold > 1 {
		opts.FuzzyThreshold = 0.8
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}

	kb := knowledge.New()
	return &Engine{
		snapshots:      opts.Snapshots,
		history:        opts.History,
		cache:          opts.Cache,
		kb:             kb,
		classifier:     intent.New(),
		retriever:      retrieval.New(kb, opts.TopN, opts.MaxTopN, opts.Logger),
		resolver:       resolver.New(opts.History, opts.HistoryDepth, opts.Logger),
		logger:         opts.Logger,
		fuzzyThreshold: opts.FuzzyThreshold,
		cacheResults:   opts.CacheResults,
		cacheTTL:       opts.CacheTTL,
	}, nil
}

// NewSessionID returns a fresh session identifier.
func NewSessionID() string {
	return uuid.New().String()
}

// Query runs the full pipeline for one user query. A panic anywhere in the
// pipeline degrades the response to a general-intent context instead of
// failing the request.
func (e *Engine) Query(ctx context.Context, sessionID, rawQuery string) (resp *Response, err error) {
	start := time.Now()

	snap, err := e.snapshots.Current()
	if err != nil {
		return nil, err
	}

	log := e.logger.WithSession(sessionID)

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("query", rawQuery).Msg("pipeline panic, degrading to general context")
			resp = &Response{
				SessionID:     sessionID,
				Query:         rawQuery,
				ResolvedQuery: rawQuery,
				Generation:    snap.Generation,
				Context: assemble.StructuredContext{
					Intent:     string(intent.General),
					Confidence: 0.50,
				},
			}
			err = nil
		}
	}()

	dict, extractor, buildErr := e.dictionaryFor(snap)
	if buildErr != nil {
		return nil, buildErr
	}

	resolved, didResolve, resolveErr := e.resolver.Resolve(ctx, dict, sessionID, rawQuery)
	if resolveErr != nil {
		log.Warn().Err(resolveErr).Msg("history unavailable, skipping referent resolution")
		resolved, didResolve = rawQuery, false
	}

	ext := extractor.Extract(resolved)
	cls := e.classifier.Classify(resolved, ext)

	sctx, cached := e.lookupCached(ctx, snap.Generation, cls, resolved)
	if !cached {
		ret := e.retriever.Retrieve(resolved, cls, ext, snap)
		sctx = assemble.Assemble(cls, ret, snap)
		e.storeCached(ctx, snap.Generation, resolved, sctx)
	}

	turn := history.Turn{
		SessionID:     sessionID,
		RawQuery:      rawQuery,
		ResolvedQuery: resolved,
	}
	for _, p := range ext.FoundPlayers() {
		turn.MentionedPlayerIDs = append(turn.MentionedPlayerIDs, p.ID)
	}
	turn, appendErr := e.history.Append(ctx, turn)
	if appendErr != nil {
		log.Warn().Err(appendErr).Msg("turn not recorded, follow-ups will lack context")
	}

	log.Info().
		Str("intent", sctx.Intent).
		Float64("confidence", sctx.Confidence).
		Bool("resolved", didResolve).
		Bool("cached", cached).
		Int("players", len(sctx.Players)).
		Dur("took", time.Since(start)).
		Msg("query answered")

	return &Response{
		SessionID:     sessionID,
		TurnIndex:     turn.TurnIndex,
		Query:         rawQuery,
		ResolvedQuery: resolved,
		Resolved:      didResolve,
		Generation:    snap.Generation,
		Cached:        cached,
		Context:       sctx,
	}, nil
}

// RecordAnswer attaches the generated answer text to a turn so later
// pronoun resolution can draw on it.
func (e *Engine) RecordAnswer(ctx context.Context, sessionID string, turnIndex int, answer string) error {
	return e.history.SetAnswer(ctx, sessionID, turnIndex, answer)
}

// ClearSession drops a session's conversation history.
func (e *Engine) ClearSession(ctx context.Context, sessionID string) error {
	return e.history.Clear(ctx, sessionID)
}

// Ready reports whether a snapshot is loaded.
func (e *Engine) Ready() bool {
	_, err := e.snapshots.Current()
	return err == nil
}

// dictionaryFor returns the compiled dictionary for the snapshot, rebuilding
// once per generation.
func (e *Engine) dictionaryFor(snap *snapshot.Snapshot) (*dictionary.Dictionary, *extract.Extractor, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.dict != nil && e.dict.Generation() == snap.Generation {
		return e.dict, e.extractor, nil
	}

	dict, err := dictionary.New(snap, e.fuzzyThreshold)
	if err != nil {
		return nil, nil, fmt.Errorf("build dictionary: %w", err)
	}
	e.dict = dict
	e.extractor = extract.New(dict)

	e.logger.Debug().
		Str("generation", snap.Generation).
		Int("players", len(snap.Players)).
		Msg("dictionary compiled")
	return e.dict, e.extractor, nil
}

// Conversational exchanges vary per session; everything else is pure in the
// resolved query and snapshot, so the context is safe to share.
func cacheable(cls intent.Classification) bool {
	return cls.Intent != intent.Contextual && cls.Intent != intent.Conversational
}

func (e *Engine) lookupCached(ctx context.Context, generation string, cls intent.Classification, resolved string) (assemble.StructuredContext, bool) {
	if !e.cacheResults || !cacheable(cls) {
		return assemble.StructuredContext{}, false
	}

	data, err := e.cache.Get(ctx, contextCacheKey(generation, resolved))
	if err != nil {
		return assemble.StructuredContext{}, false
	}

	var sctx assemble.StructuredContext
	if err := json.Unmarshal(data, &sctx); err != nil {
		return assemble.StructuredContext{}, false
	}
	return sctx, true
}

func (e *Engine) storeCached(ctx context.Context, generation, resolved string, sctx assemble.StructuredContext) {
	if !e.cacheResults || sctx.Intent == string(intent.Contextual) || sctx.Intent == string(intent.Conversational) {
		return
	}

	data, err := json.Marshal(sctx)
	if err != nil {
		return
	}
	if err := e.cache.Set(ctx, contextCacheKey(generation, resolved), data, e.cacheTTL); err != nil {
		e.logger.Debug().Err(err).Msg("context cache write failed")
	}
}

func contextCacheKey(generation, resolved string) string {
	return cache.GenerationCacheKey(generation, "ctx", dictionary.Normalize(resolved))
}
