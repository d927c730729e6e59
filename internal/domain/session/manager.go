package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"shopwise-server/internal/domain/directory"
	"shopwise-server/internal/domain/eventbus"
	"shopwise-server/internal/domain/session/model"
	"shopwise-server/internal/domain/session/store"
)

type (
	// Principal re-exports the shared session entity for callers.
	Principal = model.Principal
	// State re-exports the authentication snapshot for callers.
	State = model.State
	// Logger re-exports the logging interface used across the domain.
	Logger = model.Logger
)

// User-visible failure messages. Bad credentials collapse unknown
// username and wrong password into one message on purpose.
const (
	MsgInvalidCredentials = "Invalid username or password"
	MsgUsernameTaken      = "Username already exists"
)

const (
	defaultCleanupInterval = 10 * time.Minute
	minCleanupInterval     = 30 * time.Second
)

// Options encapsulates the dependencies required to construct a Manager.
type Options struct {
	Store           store.Store
	Directory       *directory.Directory
	Logger          Logger
	Token           *Token
	SessionTTL      time.Duration
	CleanupInterval time.Duration
}

// Manager owns the session lifecycle: login, logout, register and
// restore. Business failures (bad credentials, duplicate usernames,
// corrupt records) are reported inside the returned State; errors are
// reserved for infrastructure faults.
type Manager struct {
	store      store.Store
	directory  *directory.Directory
	logger     Logger
	token      *Token
	sessionTTL time.Duration

	cleanupInterval time.Duration
	cleanupStop     chan struct{}
	cleanupOnce     sync.Once
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// NewManager wires a Manager using the supplied options.
func NewManager(opts Options) (*Manager, error) {
	if opts.Store == nil {
		return nil, errors.New("session manager requires a store")
	}
	if opts.Directory == nil {
		return nil, errors.New("session manager requires a user directory")
	}
	if opts.Logger == nil {
		return nil, errors.New("session manager requires a logger")
	}
	if opts.Token == nil {
		return nil, errors.New("session manager requires a token helper")
	}
	sessionTTL := opts.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	cleanupInterval := opts.CleanupInterval
	if cleanupInterval <= 0 {
		cleanupInterval = defaultCleanupInterval
	} else if cleanupInterval < minCleanupInterval {
		opts.Logger.Warn(
			"cleanup interval too small, adjusting to minimum %s",
			minCleanupInterval,
		)
		cleanupInterval = minCleanupInterval
	}
	mgr := &Manager{
		store:           opts.Store,
		directory:       opts.Directory,
		logger:          opts.Logger,
		token:           opts.Token,
		sessionTTL:      sessionTTL,
		cleanupInterval: cleanupInterval,
		cleanupStop:     make(chan struct{}),
	}

	go mgr.runCleanup()
	return mgr, nil
}

func (m *Manager) runCleanup() {
	ticker := time.NewTicker(m.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := m.store.CleanupExpired(context.Background()); err != nil {
				m.logger.Warn("session store cleanup failed: %v", err)
			}
		case <-m.cleanupStop:
			return
		}
	}
}

// Login authenticates a username/password pair against the directory.
// On success it persists the session record and returns the signed token
// alongside the authenticated state.
func (m *Manager) Login(ctx context.Context, username, password string) (State, string, error) {
	principal, ok := m.directory.Lookup(username, password)
	if !ok {
		m.logger.Debug("login rejected for user: %s", username)
		return model.Failed(MsgInvalidCredentials), "", nil
	}

	token, err := m.persist(ctx, principal)
	if err != nil {
		return model.Anonymous(), "", err
	}

	m.logger.Info("[SESSION] user logged in: %s", principal.Username)
	eventbus.PublishAsync(eventbus.TopicLogin, principal.Username, string(principal.Role))
	return model.Authenticated(principal), token, nil
}

// Logout removes the persisted record for the token's session, if any,
// and returns the unauthenticated default. Calling it without a live
// session is a no-op with the same observable result.
func (m *Manager) Logout(ctx context.Context, tokenString string) (State, error) {
	if tokenString != "" {
		if ok, sessionID, err := m.token.Verify(tokenString); err == nil && ok {
			if err := m.store.Remove(ctx, sessionID); err != nil {
				return model.Anonymous(), err
			}
			m.logger.Info("[SESSION] session removed: %s", sessionID)
			eventbus.PublishAsync(eventbus.TopicLogout, sessionID)
		}
	}
	return model.Anonymous(), nil
}

// Register creates a new principal unless the username is taken, signs it
// in immediately, and persists the record. The directory itself is not
// extended: the seeded user set stands in for a backing user table, so a
// later Login with these credentials will not find them.
func (m *Manager) Register(ctx context.Context, input RegisterInput) (State, string, error) {
	if m.directory.Exists(input.Username) {
		m.logger.Debug("registration rejected, username taken: %s", input.Username)
		return model.Failed(MsgUsernameTaken), "", nil
	}

	principal := model.Principal{
		ID:        strconv.Itoa(m.directory.Count() + 1),
		Username:  input.Username,
		Password:  input.Password,
		Role:      model.RoleUser,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	}

	token, err := m.persist(ctx, principal)
	if err != nil {
		return model.Anonymous(), "", err
	}

	m.logger.Info("[SESSION] user registered: %s", principal.Username)
	eventbus.PublishAsync(eventbus.TopicRegister, principal.Username)
	return model.Authenticated(principal), token, nil
}

// Restore rebuilds the authentication state from a previously issued
// token. Absent or unverifiable tokens and missing records yield the
// unauthenticated default; a record that cannot be decoded fails closed
// and is deleted rather than propagating a fault.
func (m *Manager) Restore(ctx context.Context, tokenString string) (State, error) {
	if tokenString == "" {
		return model.Anonymous(), nil
	}

	ok, sessionID, err := m.token.Verify(tokenString)
	if err != nil || !ok {
		return model.Anonymous(), nil
	}

	rec, err := m.store.Get(ctx, sessionID)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrNotFound):
		return model.Anonymous(), nil
	case errors.Is(err, store.ErrCorrupt):
		return m.discardCorrupt(ctx, sessionID, err), nil
	default:
		return model.Anonymous(), err
	}

	var principal model.Principal
	if err := sonic.Unmarshal(rec.Payload, &principal); err != nil {
		return m.discardCorrupt(ctx, sessionID, err), nil
	}

	return model.Authenticated(principal), nil
}

func (m *Manager) discardCorrupt(ctx context.Context, sessionID string, cause error) State {
	m.logger.Warn("[SESSION] discarding corrupt session record %s: %v", sessionID, cause)
	if err := m.store.Remove(ctx, sessionID); err != nil {
		m.logger.Error("[SESSION] failed to remove corrupt record %s: %v", sessionID, err)
	}
	eventbus.PublishAsync(eventbus.TopicRestoreCorrupt, sessionID)
	return model.Anonymous()
}

func (m *Manager) persist(ctx context.Context, principal model.Principal) (string, error) {
	payload, err := sonic.Marshal(principal)
	if err != nil {
		return "", fmt.Errorf("failed to serialize principal: %w", err)
	}

	sessionID := uuid.NewString()
	now := time.Now()
	expiresAt := now.Add(m.sessionTTL)
	rec := model.Record{
		SessionID: sessionID,
		Payload:   payload,
		CreatedAt: now,
		ExpiresAt: &expiresAt,
	}
	if err := m.store.Save(ctx, rec); err != nil {
		m.logger.Error("failed to persist session for %s: %v", principal.Username, err)
		return "", err
	}

	return m.token.Generate(sessionID)
}

// Stats returns debug information from the store backend.
func (m *Manager) Stats(ctx context.Context) (map[string]any, error) {
	return m.store.Stats(ctx)
}

// Sessions returns the identifiers of live session records.
func (m *Manager) Sessions(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Close releases underlying resources.
func (m *Manager) Close() error {
	m.cleanupOnce.Do(func() {
		close(m.cleanupStop)
	})

	if err := m.store.Close(context.Background()); err != nil {
		m.logger.Error("failed closing session store: %v", err)
		return err
	}
	return nil
}
