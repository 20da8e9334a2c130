package controllers

import (
	"errors"
	"fmt"
	"strconv"

	"go-postgres-stockledger/audit"

	"github.com/gin-gonic/gin"
)

// currentUserID normalizes the JWT claim stashed in the context. Claims
// decoded from JSON arrive as float64, tests may set a plain uint.
func currentUserID(c *gin.Context) (uint, error) {
	v, ok := c.Get("user_id")
	if !ok {
		return 0, errors.New("user_id missing from context")
	}
	var id uint
	switch n := v.(type) {
	case uint:
		id = n
	case int:
		id = uint(n)
	case int64:
		id = uint(n)
	case float64:
		id = uint(n)
	case string:
		if parsed, err := strconv.ParseUint(n, 10, 64); err == nil {
			id = uint(parsed)
		}
	}
	if id == 0 {
		return 0, errors.New("user_id invalid")
	}
	return id, nil
}

func currentUsername(c *gin.Context) string {
	if v, ok := c.Get("username"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// recordAudit emits a best-effort audit entry for the acting user.
func recordAudit(c *gin.Context, action, entity string, entityID uint, detail any) {
	actorID, _ := currentUserID(c)
	audit.Default.Record(audit.Entry{
		ActorID:   actorID,
		ActorName: currentUsername(c),
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Detail:    detail,
		RequestID: c.GetString("request_id"),
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
}

func getInt(c *gin.Context, key string, def int) int {
	if s := c.Query(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// businessError marks a rule violation that maps to HTTP 400, as opposed to
// unexpected failures that map to 500.
type businessError struct {
	msg string
}

func (e *businessError) Error() string { return e.msg }

func businessErrf(format string, args ...any) error {
	return &businessError{msg: fmt.Sprintf(format, args...)}
}

func isBusinessError(err error) bool {
	var be *businessError
	return errors.As(err, &be)
}
