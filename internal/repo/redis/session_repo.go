package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	authsvc "github.com/Thenukee/JobMarket-sub000/internal/services/auth"
)

const (
	sessionPrefix         = "sessions:"
	refreshPrefix         = "refresh:"
	sessionRefreshPrefix  = "session_refresh:"
	accountSessionsPrefix = "account_sessions:"
)

// SessionRepo keeps the identity context in Redis. The session hash carries a
// sliding TTL (the idle timeout); refresh tokens are stored separately and
// replaced wholesale on rotation.
type SessionRepo struct {
	client *goredis.Client
}

func NewSessionRepo(client *goredis.Client) *SessionRepo {
	return &SessionRepo{client: client}
}

func (r *SessionRepo) Create(ctx context.Context, session authsvc.SessionRecord, refreshToken string, idleTTL time.Duration) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(session.SID) == "" || strings.TrimSpace(refreshToken) == "" || session.AccountID <= 0 {
		return authsvc.ErrInvalidInput
	}
	if idleTTL <= 0 {
		idleTTL = time.Hour
	}

	refreshTTL := ttlFor(session.ExpiresAt)
	fields := map[string]interface{}{
		"account_id": session.AccountID,
		"role":       session.Role,
		"issued_at":  session.IssuedAt.Unix(),
		"expires_at": session.ExpiresAt.Unix(),
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, sessionKey(session.SID), fields)
	pipe.Expire(ctx, sessionKey(session.SID), idleTTL)
	pipe.HSet(ctx, refreshKey(refreshToken), map[string]interface{}{
		"account_id": session.AccountID,
		"sid":        session.SID,
		"role":       session.Role,
		"issued_at":  session.IssuedAt.Unix(),
		"expires_at": session.ExpiresAt.Unix(),
	})
	pipe.Expire(ctx, refreshKey(refreshToken), refreshTTL)
	pipe.Set(ctx, sessionRefreshKey(session.SID), refreshToken, refreshTTL)
	pipe.SAdd(ctx, accountSessionsKey(session.AccountID), session.SID)
	pipe.Expire(ctx, accountSessionsKey(session.AccountID), refreshTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("create redis session: %w", err)
	}

	return nil
}

func (r *SessionRepo) GetSession(ctx context.Context, sid string) (authsvc.SessionRecord, error) {
	if r.client == nil {
		return authsvc.SessionRecord{}, fmt.Errorf("redis client is nil")
	}

	values, err := r.client.HGetAll(ctx, sessionKey(sid)).Result()
	if err != nil {
		return authsvc.SessionRecord{}, fmt.Errorf("get session hash: %w", err)
	}
	if len(values) == 0 {
		return authsvc.SessionRecord{}, authsvc.ErrSessionNotFound
	}

	session, err := parseSessionRecord(values)
	if err != nil {
		return authsvc.SessionRecord{}, err
	}
	session.SID = sid
	return session, nil
}

// Touch extends the idle timeout. An expired (idle) session is simply gone.
func (r *SessionRepo) Touch(ctx context.Context, sid string, idleTTL time.Duration) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(sid) == "" || idleTTL <= 0 {
		return authsvc.ErrInvalidInput
	}

	ok, err := r.client.Expire(ctx, sessionKey(sid), idleTTL).Result()
	if err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	if !ok {
		return authsvc.ErrSessionNotFound
	}

	return nil
}

func (r *SessionRepo) GetByRefreshToken(ctx context.Context, refreshToken string) (authsvc.SessionRecord, error) {
	if r.client == nil {
		return authsvc.SessionRecord{}, fmt.Errorf("redis client is nil")
	}

	values, err := r.client.HGetAll(ctx, refreshKey(refreshToken)).Result()
	if err != nil {
		return authsvc.SessionRecord{}, fmt.Errorf("get refresh hash: %w", err)
	}
	if len(values) == 0 {
		return authsvc.SessionRecord{}, authsvc.ErrRefreshNotFound
	}

	session, err := parseSessionRecord(values)
	if err != nil {
		return authsvc.SessionRecord{}, err
	}

	sid := strings.TrimSpace(values["sid"])
	if sid == "" {
		return authsvc.SessionRecord{}, authsvc.ErrRefreshNotFound
	}
	session.SID = sid

	return session, nil
}

// RotateRefresh swaps the refresh token and re-keys the session under a new
// session id, so both identifiers change on every refresh.
func (r *SessionRepo) RotateRefresh(ctx context.Context, oldSID, newSID, oldRefreshToken, newRefreshToken string, expiresAt time.Time, idleTTL time.Duration) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(newSID) == "" || strings.TrimSpace(newRefreshToken) == "" {
		return authsvc.ErrInvalidInput
	}

	session, err := r.GetByRefreshToken(ctx, oldRefreshToken)
	if err != nil {
		return err
	}
	if oldSID != "" && oldSID != session.SID {
		return authsvc.ErrRefreshNotFound
	}
	if idleTTL <= 0 {
		idleTTL = time.Hour
	}

	refreshTTL := ttlFor(expiresAt)
	fields := map[string]interface{}{
		"account_id": session.AccountID,
		"role":       session.Role,
		"issued_at":  session.IssuedAt.Unix(),
		"expires_at": expiresAt.Unix(),
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, refreshKey(oldRefreshToken))
	pipe.Del(ctx, sessionKey(session.SID))
	pipe.Del(ctx, sessionRefreshKey(session.SID))
	pipe.SRem(ctx, accountSessionsKey(session.AccountID), session.SID)
	pipe.HSet(ctx, refreshKey(newRefreshToken), map[string]interface{}{
		"account_id": session.AccountID,
		"sid":        newSID,
		"role":       session.Role,
		"issued_at":  session.IssuedAt.Unix(),
		"expires_at": expiresAt.Unix(),
	})
	pipe.Expire(ctx, refreshKey(newRefreshToken), refreshTTL)
	pipe.HSet(ctx, sessionKey(newSID), fields)
	pipe.Expire(ctx, sessionKey(newSID), idleTTL)
	pipe.Set(ctx, sessionRefreshKey(newSID), newRefreshToken, refreshTTL)
	pipe.SAdd(ctx, accountSessionsKey(session.AccountID), newSID)
	pipe.Expire(ctx, accountSessionsKey(session.AccountID), refreshTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("rotate session: %w", err)
	}

	return nil
}

func (r *SessionRepo) DeleteSession(ctx context.Context, sid string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(sid) == "" {
		return nil
	}

	sessionValues, err := r.client.HGetAll(ctx, sessionKey(sid)).Result()
	if err != nil {
		return fmt.Errorf("load session for delete: %w", err)
	}

	refreshToken, err := r.client.Get(ctx, sessionRefreshKey(sid)).Result()
	if err != nil && err != goredis.Nil {
		return fmt.Errorf("load session refresh pointer: %w", err)
	}

	var accountID int64
	if value, ok := sessionValues["account_id"]; ok {
		parsed, parseErr := strconv.ParseInt(value, 10, 64)
		if parseErr == nil && parsed > 0 {
			accountID = parsed
		}
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, sessionKey(sid))
	pipe.Del(ctx, sessionRefreshKey(sid))
	if refreshToken != "" {
		pipe.Del(ctx, refreshKey(refreshToken))
	}
	if accountID > 0 {
		pipe.SRem(ctx, accountSessionsKey(accountID), sid)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

func (r *SessionRepo) DeleteAllForAccount(ctx context.Context, accountID int64) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if accountID <= 0 {
		return authsvc.ErrInvalidInput
	}

	sids, err := r.client.SMembers(ctx, accountSessionsKey(accountID)).Result()
	if err != nil {
		return fmt.Errorf("list account sessions: %w", err)
	}

	for _, sid := range sids {
		if err := r.DeleteSession(ctx, sid); err != nil {
			return err
		}
	}

	if err := r.client.Del(ctx, accountSessionsKey(accountID)).Err(); err != nil {
		return fmt.Errorf("delete account sessions key: %w", err)
	}

	return nil
}

func parseSessionRecord(values map[string]string) (authsvc.SessionRecord, error) {
	accountID, err := strconv.ParseInt(values["account_id"], 10, 64)
	if err != nil || accountID <= 0 {
		return authsvc.SessionRecord{}, authsvc.ErrUnauthorized
	}

	issuedUnix, err := strconv.ParseInt(values["issued_at"], 10, 64)
	if err != nil {
		return authsvc.SessionRecord{}, authsvc.ErrUnauthorized
	}

	expiresUnix, err := strconv.ParseInt(values["expires_at"], 10, 64)
	if err != nil {
		return authsvc.SessionRecord{}, authsvc.ErrUnauthorized
	}

	return authsvc.SessionRecord{
		AccountID: accountID,
		Role:      values["role"],
		IssuedAt:  time.Unix(issuedUnix, 0).UTC(),
		ExpiresAt: time.Unix(expiresUnix, 0).UTC(),
	}, nil
}

func ttlFor(expiresAt time.Time) time.Duration {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return time.Second
	}
	return ttl
}

func sessionKey(sid string) string {
	return sessionPrefix + sid
}

func refreshKey(token string) string {
	return refreshPrefix + token
}

func sessionRefreshKey(sid string) string {
	return sessionRefreshPrefix + sid
}

func accountSessionsKey(accountID int64) string {
	return accountSessionsPrefix + strconv.FormatInt(accountID, 10)
}
