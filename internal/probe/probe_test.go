package probe

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hadesctl/internal/config"
)

func testConn() config.ConnectionConfig {
	return config.ConnectionConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "hades",
		Password: `"@secret"`,
		Database: "hades_db",
	}
}

// mockOpener hands out the sqlmock handle and records the DSN it was given.
func mockOpener(t *testing.T) (OpenFunc, sqlmock.Sqlmock, *string) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	var gotDSN string
	return func(dsn string) (*sql.DB, error) {
		gotDSN = dsn
		return db, nil
	}, mock, &gotDSN
}

func TestDSN_StripsQuotesFromPassword(t *testing.T) {
	u, err := url.Parse(DSN(testConn(), 5*time.Second))
	require.NoError(t, err)

	password, ok := u.User.Password()
	require.True(t, ok)
	assert.Equal(t, "@secret", password)
	assert.Equal(t, "hades", u.User.Username())
	assert.Equal(t, "localhost:5432", u.Host)
	assert.Equal(t, "/hades_db", u.Path)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
	assert.Equal(t, "5", u.Query().Get("connect_timeout"))
}

func TestDSN_NoPassword(t *testing.T) {
	conn := testConn()
	conn.Password = ""
	u, err := url.Parse(DSN(conn, 200*time.Millisecond))
	require.NoError(t, err)

	_, ok := u.User.Password()
	assert.False(t, ok)
	assert.Equal(t, "1", u.Query().Get("connect_timeout"))
}

func TestProbe_Success(t *testing.T) {
	open, mock, gotDSN := mockOpener(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1")).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectClose()

	res := NewWithOpener(open, time.Second).Probe(context.Background(), testConn())

	assert.True(t, res.OK)
	assert.Equal(t, "Connection successful to hades@localhost:5432/hades_db", res.Message)
	assert.Contains(t, *gotDSN, "%40secret")
	assert.NotContains(t, *gotDSN, "%22")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProbe_QueryFailure(t *testing.T) {
	open, mock, _ := mockOpener(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1")).
		WillReturnError(errors.New(`password authentication failed for user "hades" (tried @secret)`))
	mock.ExpectClose()

	res := NewWithOpener(open, time.Second).Probe(context.Background(), testConn())

	assert.False(t, res.OK)
	assert.Contains(t, res.Message, "Connection failed: password authentication failed")
	assert.NotContains(t, res.Message, "@secret")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProbe_UnexpectedResult(t *testing.T) {
	open, mock, _ := mockOpener(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1")).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(2))
	mock.ExpectClose()

	res := NewWithOpener(open, time.Second).Probe(context.Background(), testConn())

	assert.False(t, res.OK)
	assert.Equal(t, "Connection succeeded but query returned unexpected result", res.Message)
}

func TestProbe_OpenFailure(t *testing.T) {
	open := func(string) (*sql.DB, error) { return nil, errors.New("dial tcp 127.0.0.1:5432: connect: connection refused") }

	res := NewWithOpener(open, time.Second).Probe(context.Background(), testConn())

	assert.False(t, res.OK)
	assert.Equal(t, "Connection failed: dial tcp 127.0.0.1:5432: connect: connection refused", res.Message)
}

func TestNew_DefaultTimeout(t *testing.T) {
	p := New(0)
	assert.Equal(t, config.DefaultProbeTimeout, p.timeout)
}
