package store

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"hermannm.dev/devlog/log"
	"hermannm.dev/querybuilder/api"
	"hermannm.dev/querybuilder/definitions"
	"hermannm.dev/querybuilder/query"
)

// The query API operations the store depends on. Implemented by api.Client.
type Gateway interface {
	FetchDefinitions(ctx context.Context) (definitions.Definitions, error)
	RunQuery(ctx context.Context, q query.Query) (api.Response, error)
	RunPromptQuery(ctx context.Context, prompt string) (api.Response, error)
}

// Owns a State and applies actions to it. Safe for concurrent use.
type Store struct {
	gateway Gateway

	// Held while an action is reduced and its subscribers are notified, so that every subscriber
	// sees states in the order they were produced.
	dispatchLock sync.Mutex
	stateLock    sync.RWMutex
	state        State

	subscribers      []subscriber
	nextSubscriberID int

	definitionsGroup singleflight.Group

	requestLock sync.Mutex
	pending     pendingRequest
}

type subscriber struct {
	id       int
	callback func(State)
}

type pendingRequest struct {
	id     uuid.UUID
	cancel context.CancelFunc
}

func New(gateway Gateway) *Store {
	return &Store{gateway: gateway, state: Initial()}
}

func (store *Store) State() State {
	store.stateLock.RLock()
	defer store.stateLock.RUnlock()
	return store.state
}

// Applies the action and calls every subscriber with the new state, on the calling goroutine.
// Subscribers must not call Dispatch themselves.
func (store *Store) Dispatch(action Action) {
	store.dispatchLock.Lock()
	defer store.dispatchLock.Unlock()

	store.stateLock.Lock()
	next := Reduce(store.state, action)
	store.state = next
	subscribers := make([]subscriber, len(store.subscribers))
	copy(subscribers, store.subscribers)
	store.stateLock.Unlock()

	for _, subscriber := range subscribers {
		subscriber.callback(next)
	}
}

// Registers a callback for every new state. Call the returned function to unsubscribe.
func (store *Store) Subscribe(callback func(State)) (unsubscribe func()) {
	store.stateLock.Lock()
	defer store.stateLock.Unlock()

	id := store.nextSubscriberID
	store.nextSubscriberID++
	store.subscribers = append(store.subscribers, subscriber{id: id, callback: callback})

	return func() {
		store.stateLock.Lock()
		defer store.stateLock.Unlock()

		for i, subscriber := range store.subscribers {
			if subscriber.id == id {
				store.subscribers = append(store.subscribers[:i:i], store.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Loads field definitions. Calls made while a fetch is in flight wait for that fetch instead of
// starting a new one. On failure, the previous definitions are kept.
func (store *Store) FetchDefinitions(ctx context.Context) {
	_, _, _ = store.definitionsGroup.Do("definitions", func() (any, error) {
		store.Dispatch(DefinitionsRequested{})

		defs, err := store.gateway.FetchDefinitions(ctx)
		if err != nil {
			log.ErrorCause(err, "could not update field definitions")
			store.Dispatch(DefinitionsFailed{Message: api.ErrorMessage(err)})
			return nil, err
		}

		log.Debug(
			"loaded field definitions",
			slog.Int("metrics", len(defs.Metrics)),
			slog.Int("dimensions", len(defs.Dimensions)),
		)
		store.Dispatch(DefinitionsLoaded{Definitions: defs})
		return nil, nil
	})
}

// Runs the current query. Does nothing if no metric is selected.
func (store *Store) FetchVisualization(ctx context.Context) {
	q := store.State().Query
	if !q.CanRun() {
		log.Debug("skipping query fetch, since no metrics are selected")
		return
	}

	store.runQuery(ctx, func(ctx context.Context) (api.Response, error) {
		return store.gateway.RunQuery(ctx, q)
	})
}

// Runs a natural-language query. The override, if not empty, replaces the stored prompt. Does
// nothing if the resulting prompt is blank.
func (store *Store) FetchAIQuery(ctx context.Context, promptOverride string) {
	prompt := promptOverride
	if prompt == "" {
		prompt = store.State().AIPrompt
	}
	if strings.TrimSpace(prompt) == "" {
		return
	}

	if promptOverride != "" {
		store.Dispatch(SetAIPrompt{Prompt: promptOverride})
	}

	store.runQuery(ctx, func(ctx context.Context) (api.Response, error) {
		return store.gateway.RunPromptQuery(ctx, prompt)
	})
}

// Cancels any query fetch in flight, then sends a new one. Only the newest fetch may update the
// response.
func (store *Store) runQuery(
	ctx context.Context,
	send func(ctx context.Context) (api.Response, error),
) {
	requestID := uuid.New()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// The new request must be pending before the previous one is canceled, so that the previous
	// one's completion is seen as stale
	store.requestLock.Lock()
	previous := store.pending
	store.pending = pendingRequest{id: requestID, cancel: cancel}
	store.Dispatch(QueryRequested{RequestID: requestID})
	store.requestLock.Unlock()

	if previous.cancel != nil {
		log.Debug("canceling superseded query", slog.String("requestId", previous.id.String()))
		previous.cancel()
	}

	defer func() {
		store.requestLock.Lock()
		if store.pending.id == requestID {
			store.pending = pendingRequest{}
		}
		store.requestLock.Unlock()
	}()

	response, err := send(ctx)
	if err != nil {
		if api.IsCanceled(err) && store.State().PendingRequest != requestID {
			return
		}

		log.ErrorCause(err, "query failed")
		store.Dispatch(QueryFailed{RequestID: requestID, Message: api.ErrorMessage(err)})
		return
	}

	store.Dispatch(QuerySucceeded{RequestID: requestID, Response: &response})
}
