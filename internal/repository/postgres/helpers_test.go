package postgres

import (
	"errors"
	"fmt"
	"testing"

	"ptp_tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "plain", escapeLike("plain"))
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\dir`, escapeLike(`c:\dir`))
}

func TestNotFound(t *testing.T) {
	assert.ErrorIs(t, notFound(gorm.ErrRecordNotFound), domain.ErrNotFound)
	assert.ErrorIs(t, notFound(fmt.Errorf("get: %w", gorm.ErrRecordNotFound)), domain.ErrNotFound)

	other := errors.New("connection reset")
	assert.Equal(t, other, notFound(other))
	assert.Nil(t, notFound(nil))
}
