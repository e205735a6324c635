package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestConstructorsKeepMessageAndKind(t *testing.T) {
	notFound := NewNotFoundError("blog not found")
	assert.Equal(t, "blog not found", notFound.Error())
	assert.Equal(t, http.StatusNotFound, notFound.StatusCode)
	assert.True(t, IsNotFound(notFound))

	forbidden := NewForbiddenError("Not allowed to delete a comment from another user")
	assert.Equal(t, "Not allowed to delete a comment from another user", forbidden.Error())
	assert.True(t, IsForbidden(forbidden))

	conflict := NewConflictError("Already liked")
	assert.Equal(t, "Already liked", conflict.Error())
	assert.True(t, IsConflict(conflict))
	assert.False(t, IsNotFound(conflict))
}

func TestNotImplementedAndTransactionFailed(t *testing.T) {
	notImplemented := NewNotImplementedError()
	assert.Equal(t, http.StatusNotImplemented, notImplemented.StatusCode)
	assert.Equal(t, "Not implemented", notImplemented.Error())
	assert.ErrorIs(t, notImplemented, ErrNotImplemented)

	failed := NewTransactionFailedError("delete blog", errors.New("no such table: comments"))
	assert.Equal(t, http.StatusInternalServerError, failed.StatusCode)
	assert.Equal(t, "transaction", failed.Field)
	assert.ErrorIs(t, failed, ErrTransactionFailed)
	assert.Contains(t, failed.GetFullError(), "no such table: comments")
}

func TestAlreadyExists(t *testing.T) {
	err := NewAlreadyExists("blog")
	assert.Equal(t, "blog already exists", err.Error())
	assert.True(t, IsAlreadyExists(err))
}

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, IsDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKey(errors.New(`ERROR: duplicate key value violates unique constraint "idx_blogs_post_link"`)))
	assert.True(t, IsDuplicateKey(errors.New("constraint failed: UNIQUE constraint failed: blogs.post_link (2067)")))
	assert.False(t, IsDuplicateKey(errors.New("syntax error")))
	assert.False(t, IsDuplicateKey(nil))
}

func TestNewDatabaseError(t *testing.T) {
	dup := NewDatabaseError("create", "blog", gorm.ErrDuplicatedKey)
	assert.Equal(t, http.StatusConflict, dup.StatusCode)
	assert.True(t, IsAlreadyExists(dup))

	missing := NewDatabaseError("find", "comment", fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound))
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)

	generic := NewDatabaseError("update", "blog", errors.New("disk I/O error"))
	assert.Equal(t, http.StatusInternalServerError, generic.StatusCode)
	assert.Equal(t, "database query failed: Failed to update blog", generic.Error())
	assert.Equal(t, "database query failed: Failed to update blog -> disk I/O error", generic.GetFullError())
}

func TestModelErrors(t *testing.T) {
	unavailable := NewModelUnavailableError()
	assert.Equal(t, http.StatusServiceUnavailable, unavailable.StatusCode)
	assert.True(t, IsModelUnavailable(unavailable))

	failed := NewModelError("qwen", errors.New("timeout"))
	assert.Equal(t, http.StatusBadGateway, failed.StatusCode)
	assert.Equal(t, "model call failed: qwen: timeout", failed.Error())
	assert.True(t, IsModelError(failed))
}
