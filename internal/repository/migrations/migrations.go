package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

type Migrations struct {
	db     *bun.DB
	dbType string
}

func New(db *bun.DB, dbType string) *Migrations {
	return &Migrations{db: db, dbType: dbType}
}

func (m *Migrations) Setup(ctx context.Context) error {
	if err := m.setupCurrencyTable(ctx); err != nil {
		return fmt.Errorf("setup currency: %w", err)
	}
	if err := m.setupUserTables(ctx); err != nil {
		return fmt.Errorf("setup user tables: %w", err)
	}
	if err := m.setupRequestLogTable(ctx); err != nil {
		return fmt.Errorf("setup request_log: %w", err)
	}
	return nil
}

// id объявлен как integer primary key autoincrement: sqlite тогда не
// переиспользует идентификаторы удалённых строк.
func (m *Migrations) setupCurrencyTable(ctx context.Context) error {
	ddl := `
create table if not exists currency (
  id        integer primary key autoincrement,
  num_code  text not null,
  char_code text not null unique,
  name      text not null,
  value     float,
  nominal   integer
);`
	if m.dbType == "postgres" {
		ddl = `
create table if not exists currency (
  id        bigserial primary key,
  num_code  text not null,
  char_code text not null unique,
  name      text not null,
  value     double precision,
  nominal   bigint
);`
	}

	if err := m.exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure table currency: %w", err)
	}
	return nil
}

func (m *Migrations) setupUserTables(ctx context.Context) error {
	userDDL := `
create table if not exists "user" (
  id   integer primary key autoincrement,
  name text not null
);`
	linkDDL := `
create table if not exists user_currency (
  id          integer primary key autoincrement,
  user_id     integer not null,
  currency_id integer not null,
  foreign key (user_id) references "user" (id),
  foreign key (currency_id) references currency (id)
);`
	if m.dbType == "postgres" {
		userDDL = `
create table if not exists "user" (
  id   bigserial primary key,
  name text not null
);`
		linkDDL = `
create table if not exists user_currency (
  id          bigserial primary key,
  user_id     bigint not null references "user" (id),
  currency_id bigint not null references currency (id)
);`
	}

	idxDDL := `
create index if not exists idx_user_currency_user_id
  on user_currency (user_id);`

	if err := m.exec(ctx, userDDL, linkDDL, idxDDL); err != nil {
		return fmt.Errorf("ensure user tables: %w", err)
	}
	return nil
}

func (m *Migrations) setupRequestLogTable(ctx context.Context) error {
	ddl := `
create table if not exists request_log (
  id         integer primary key autoincrement,
  path       text not null,
  status     integer,
  created_at timestamp not null default current_timestamp
);`
	if m.dbType == "postgres" {
		ddl = `
create table if not exists request_log (
  id         bigserial primary key,
  path       text not null,
  status     integer,
  created_at timestamptz not null default now()
);`
	}

	idxDDL := `
create index if not exists idx_request_log_created_at
  on request_log (created_at desc);`

	if err := m.exec(ctx, ddl, idxDDL); err != nil {
		return fmt.Errorf("ensure table request_log: %w", err)
	}
	return nil
}

func (m *Migrations) exec(ctx context.Context, stmts ...string) error {
	for _, stmt := range stmts {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
