package request

import (
	"net/url"
	"testing"

	"court-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
)

func TestPageFromQuery(t *testing.T) {
	p := PageFromQuery(url.Values{"page": {"3"}, "per_page": {"500"}})
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, utils.MaxPerPage, p.PerPage)
	assert.Equal(t, 200, p.Offset())

	p = PageFromQuery(url.Values{"page": {"-1"}, "per_page": {"abc"}})
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, utils.DefaultPerPage, p.PerPage)
	assert.Equal(t, 0, p.Offset())
}

func TestLimitOnZeroValue(t *testing.T) {
	var p PaginatedRequest
	assert.Equal(t, utils.DefaultPerPage, p.Limit())
	assert.Equal(t, 0, p.Offset())
}
