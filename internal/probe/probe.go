// Package probe performs the single round-trip connectivity check against the
// managed Postgres database.
//
// The check never raises: authentication failures, refused connections and
// timeouts all come back as a Result with OK false, and callers decide how to
// react.
package probe

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register "pgx" database/sql driver

	"hadesctl/internal/config"
	"hadesctl/pkg/logging"
)

// Result is the outcome of one probe.
type Result struct {
	OK      bool
	Message string
}

// OpenFunc opens a database handle for dsn. Matches sql.Open bound to a driver.
type OpenFunc func(dsn string) (*sql.DB, error)

func openPgx(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

// Prober runs connectivity checks.
type Prober struct {
	open    OpenFunc
	timeout time.Duration
}

// New returns a Prober using the pgx driver. A zero timeout uses
// config.DefaultProbeTimeout.
func New(timeout time.Duration) *Prober {
	return NewWithOpener(openPgx, timeout)
}

// NewWithOpener returns a Prober that opens connections with open.
func NewWithOpener(open OpenFunc, timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = config.DefaultProbeTimeout
	}
	return &Prober{open: open, timeout: timeout}
}

// DSN builds a postgres URL for conn. One pair of surrounding quotes is
// stripped from the password.
func DSN(conn config.ConnectionConfig, timeout time.Duration) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(conn.Host, strconv.Itoa(conn.Port)),
		Path:   "/" + conn.Database,
	}
	if password := config.StripQuotes(conn.Password); password != "" {
		u.User = url.UserPassword(conn.User, password)
	} else {
		u.User = url.User(conn.User)
	}

	q := url.Values{}
	q.Set("sslmode", "disable")
	secs := int(timeout / time.Second)
	if secs < 1 {
		secs = 1
	}
	q.Set("connect_timeout", strconv.Itoa(secs))
	u.RawQuery = q.Encode()
	return u.String()
}

// Probe opens a connection, runs SELECT 1 and closes it.
func (p *Prober) Probe(ctx context.Context, conn config.ConnectionConfig) Result {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	logging.Debug("Probe", "Probing %s", conn)

	db, err := p.open(DSN(conn, p.timeout))
	if err != nil {
		return failed(conn, err)
	}
	defer db.Close()

	var one int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return failed(conn, err)
	}
	if one != 1 {
		return Result{OK: false, Message: "Connection succeeded but query returned unexpected result"}
	}

	return Result{OK: true, Message: fmt.Sprintf("Connection successful to %s", conn.Target())}
}

func failed(conn config.ConnectionConfig, err error) Result {
	msg := err.Error()
	if password := config.StripQuotes(conn.Password); password != "" {
		msg = strings.ReplaceAll(msg, password, "****")
	}
	logging.Debug("Probe", "Probe of %s failed: %s", conn.Target(), msg)
	return Result{OK: false, Message: "Connection failed: " + msg}
}
