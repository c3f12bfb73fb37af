package database

import (
	"context"
	"fmt"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
    id              SERIAL PRIMARY KEY,
    username        TEXT NOT NULL,
    password        TEXT NOT NULL,
    email           TEXT NOT NULL,
    phone           TEXT NOT NULL DEFAULT '',
    role            TEXT NOT NULL DEFAULT 'INDIVIDUAL',
    name            TEXT NOT NULL DEFAULT '',
    city            TEXT NOT NULL DEFAULT '',
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT users_username_key UNIQUE (username),
    CONSTRAINT users_email_key UNIQUE (email)
);

CREATE TABLE IF NOT EXISTS financial_profiles (
    id               SERIAL PRIMARY KEY,
    user_id          INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    family_name      TEXT NOT NULL DEFAULT '',
    address          TEXT NOT NULL DEFAULT '',
    city             TEXT NOT NULL DEFAULT '',
    state            TEXT NOT NULL DEFAULT '',
    pincode          TEXT NOT NULL DEFAULT '',
    total_savings    DOUBLE PRECISION NOT NULL DEFAULT 0,
    total_debt       DOUBLE PRECISION NOT NULL DEFAULT 0,
    monthly_expenses DOUBLE PRECISION NOT NULL DEFAULT 0,
    rent_amount      DOUBLE PRECISION,
    school_fees      DOUBLE PRECISION,
    emi_amount       DOUBLE PRECISION,
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT financial_profiles_user_key UNIQUE (user_id)
);

CREATE TABLE IF NOT EXISTS family_members (
    id               SERIAL PRIMARY KEY,
    user_id          INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    full_name        TEXT NOT NULL DEFAULT '',
    age              INTEGER NOT NULL DEFAULT 0,
    gender           TEXT NOT NULL DEFAULT '',
    education_level  TEXT NOT NULL DEFAULT '',
    is_earner        BOOLEAN NOT NULL DEFAULT FALSE,
    income_type      TEXT NOT NULL DEFAULT '',
    monthly_income   DOUBLE PRECISION NOT NULL DEFAULT 0,
    income_stability TEXT NOT NULL DEFAULT '',
    skills           TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS resilience_tracker (
    id                     SERIAL PRIMARY KEY,
    user_id                INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    month                  DATE NOT NULL,
    total_income           DOUBLE PRECISION NOT NULL DEFAULT 0,
    total_expenses         DOUBLE PRECISION NOT NULL DEFAULT 0,
    total_savings          DOUBLE PRECISION NOT NULL DEFAULT 0,
    total_debt             DOUBLE PRECISION NOT NULL DEFAULT 0,
    income_source_count    INTEGER NOT NULL DEFAULT 0,
    skill_count            INTEGER NOT NULL DEFAULT 0,
    dependent_count        INTEGER NOT NULL DEFAULT 0,
    earner_count           INTEGER NOT NULL DEFAULT 0,
    emergency_fund_ratio   DOUBLE PRECISION NOT NULL DEFAULT 0,
    debt_burden_ratio      DOUBLE PRECISION NOT NULL DEFAULT 0,
    income_diversity_score DOUBLE PRECISION NOT NULL DEFAULT 0,
    skill_score            DOUBLE PRECISION NOT NULL DEFAULT 0,
    resilience_score       DOUBLE PRECISION NOT NULL DEFAULT 0,
    created_at             TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at             TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT resilience_tracker_user_month_key UNIQUE (user_id, month)
);

CREATE INDEX IF NOT EXISTS idx_family_members_user ON family_members(user_id);
`

// Migrate creates any missing tables. It is safe to run repeatedly.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("error applying schema: %w", err)
	}
	return nil
}
