package service

import (
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/netcafe/internal/database"
	"github.com/deppfellow/netcafe/internal/database/databasetest"
	"github.com/deppfellow/netcafe/internal/errs"
	"github.com/deppfellow/netcafe/internal/repository"
	"github.com/deppfellow/netcafe/internal/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// sql matches a statement by a fragment of its text.
func sql(fragment string) interface{} {
	return mock.MatchedBy(func(query string) bool {
		return strings.Contains(query, fragment)
	})
}

func newTestServices(t *testing.T) (*Services, *databasetest.MockStore) {
	t.Helper()

	store := databasetest.NewMockStore(t)
	log := zerolog.Nop()
	s := &server.Server{Logger: &log, Store: store}

	return NewServices(s, repository.NewRepositories(s)), store
}

func requireHTTPError(t *testing.T, err error, status int, code string) {
	t.Helper()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, code, httpErr.Code)
}

func computerTable(id int16, status int16) *database.Table {
	return database.NewTable("computerid", "computername", "computerstatus").
		AddRow(id, "Máy 03", status)
}

func billingTable(id int32, computerID int16, usageCost string) *database.Table {
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return database.NewTable("billingid", "computerid", "starttime", "endtime", "usagecost").
		AddRow(id, computerID, start, start.Add(time.Hour), usageCost)
}

func linesTable() *database.Table {
	return database.NewTable("foodid", "foodname", "count", "price").
		AddRow(int32(1), "Coffee", int32(2), "12000")
}
