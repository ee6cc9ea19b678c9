package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"bittrader/internal/models"
	"bittrader/pkg/db"
)

const schema = `
CREATE TABLE IF NOT EXISTS signals (
	id           BIGSERIAL PRIMARY KEY,
	pair         TEXT NOT NULL,
	timeframe    TEXT NOT NULL,
	period       INT NOT NULL,
	side         TEXT NOT NULL,
	generated_at TIMESTAMPTZ NOT NULL,
	payload      JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS signals_pair_generated_at_idx ON signals (pair, generated_at);

CREATE TABLE IF NOT EXISTS tickers (
	pair       TEXT PRIMARY KEY,
	price      DOUBLE PRECISION NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS balances (
	asset        TEXT PRIMARY KEY,
	pair         TEXT NOT NULL,
	free         DOUBLE PRECISION NOT NULL,
	valued       DOUBLE PRECISION NOT NULL,
	purchasable  BOOLEAN NOT NULL,
	liquidatable BOOLEAN NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	id               BIGINT NOT NULL,
	order_id         BIGINT NOT NULL,
	pair             TEXT NOT NULL,
	side             TEXT NOT NULL,
	price            DOUBLE PRECISION NOT NULL,
	qty              DOUBLE PRECISION NOT NULL,
	quote_qty        DOUBLE PRECISION NOT NULL,
	commission       DOUBLE PRECISION NOT NULL,
	commission_asset TEXT NOT NULL,
	time             TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (pair, id)
);`

// Postgres — хранилище поверх pgx. Замена снимка — delete + insert в одной транзакции.
type Postgres struct {
	db db.TxManager
}

func NewPostgres(tx db.TxManager) *Postgres {
	return &Postgres{db: tx}
}

// Migrate создаёт таблицы, если их ещё нет.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.db.Conn().Exec(ctx, schema); err != nil {
		return fmt.Errorf("pg.Migrate: %w", err)
	}
	return nil
}

func (p *Postgres) RecordSignal(ctx context.Context, s models.Signal) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.RecordSignal: %w", err)
		}
	}()

	payload, err := encodeSignal(s)
	if err != nil {
		return err
	}
	return p.db.RunMaster(ctx, func(ctxTx context.Context, tx db.Transaction) error {
		_, err := tx.Exec(ctxTx,
			`INSERT INTO signals (pair, timeframe, period, side, generated_at, payload) VALUES ($1, $2, $3, $4, $5, $6)`,
			s.Pair, s.Timeframe, s.Period, string(s.Side()), s.GeneratedAt, payload,
		)
		return err
	})
}

func (p *Postgres) ReplaceTickers(ctx context.Context, tickers []models.Ticker) error {
	err := p.db.RunMaster(ctx, func(ctxTx context.Context, tx db.Transaction) error {
		if _, err := tx.Exec(ctxTx, `DELETE FROM tickers`); err != nil {
			return err
		}
		for _, t := range tickers {
			if _, err := tx.Exec(ctxTx,
				`INSERT INTO tickers (pair, price, updated_at) VALUES ($1, $2, $3)`,
				t.Pair, t.Price, t.UpdatedAt,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("pg.ReplaceTickers: %w", err)
	}
	return nil
}

func (p *Postgres) ReplaceBalances(ctx context.Context, balances []models.Balance) error {
	err := p.db.RunMaster(ctx, func(ctxTx context.Context, tx db.Transaction) error {
		if _, err := tx.Exec(ctxTx, `DELETE FROM balances`); err != nil {
			return err
		}
		for _, b := range balances {
			if _, err := tx.Exec(ctxTx,
				`INSERT INTO balances (asset, pair, free, valued, purchasable, liquidatable) VALUES ($1, $2, $3, $4, $5, $6)`,
				b.Asset, b.Pair, b.Free, b.Valued, b.Purchasable, b.Liquidatable,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("pg.ReplaceBalances: %w", err)
	}
	return nil
}

func (p *Postgres) ReplaceTrades(ctx context.Context, trades []models.TradeRecord) error {
	err := p.db.RunMaster(ctx, func(ctxTx context.Context, tx db.Transaction) error {
		if _, err := tx.Exec(ctxTx, `DELETE FROM trades`); err != nil {
			return err
		}
		for _, t := range trades {
			if _, err := tx.Exec(ctxTx,
				`INSERT INTO trades (id, order_id, pair, side, price, qty, quote_qty, commission, commission_asset, time)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
				t.ID, t.OrderID, t.Pair, string(t.Side), t.Price, t.Qty, t.QuoteQty, t.Commission, t.CommissionAsset, t.Time,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("pg.ReplaceTrades: %w", err)
	}
	return nil
}

// read выполняет чтение одним снимком repeatable read.
func (p *Postgres) read(ctx context.Context, op string, fn func(ctxTx context.Context, tx db.Transaction) error) error {
	if err := p.db.RunRepeatableRead(ctx, fn); err != nil {
		return fmt.Errorf("pg.%s: %w", op, err)
	}
	return nil
}

func (p *Postgres) Signals(ctx context.Context, limit int) ([]models.Signal, error) {
	q := `SELECT payload FROM signals ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT $1`
		args = append(args, limit)
	}

	var out []models.Signal
	err := p.read(ctx, "Signals", func(ctxTx context.Context, tx db.Transaction) error {
		rows, err := tx.Query(ctxTx, q, args...)
		if err != nil {
			return err
		}
		payloads, err := pgx.CollectRows(rows, pgx.RowTo[[]byte])
		if err != nil {
			return err
		}
		out = make([]models.Signal, 0, len(payloads))
		for _, b := range payloads {
			s, err := decodeSignal(b)
			if err != nil {
				return err
			}
			out = append(out, s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Postgres) Tickers(ctx context.Context) ([]models.Ticker, error) {
	var out []models.Ticker
	err := p.read(ctx, "Tickers", func(ctxTx context.Context, tx db.Transaction) error {
		rows, err := tx.Query(ctxTx, `SELECT pair, price, updated_at FROM tickers ORDER BY pair`)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, func(r pgx.CollectableRow) (models.Ticker, error) {
			var t models.Ticker
			err := r.Scan(&t.Pair, &t.Price, &t.UpdatedAt)
			return t, err
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Postgres) Balances(ctx context.Context) ([]models.Balance, error) {
	var out []models.Balance
	err := p.read(ctx, "Balances", func(ctxTx context.Context, tx db.Transaction) error {
		rows, err := tx.Query(ctxTx,
			`SELECT asset, pair, free, valued, purchasable, liquidatable FROM balances ORDER BY valued DESC`)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, func(r pgx.CollectableRow) (models.Balance, error) {
			var b models.Balance
			err := r.Scan(&b.Asset, &b.Pair, &b.Free, &b.Valued, &b.Purchasable, &b.Liquidatable)
			return b, err
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Postgres) Trades(ctx context.Context) ([]models.TradeRecord, error) {
	var out []models.TradeRecord
	err := p.read(ctx, "Trades", func(ctxTx context.Context, tx db.Transaction) error {
		rows, err := tx.Query(ctxTx,
			`SELECT id, order_id, pair, side, price, qty, quote_qty, commission, commission_asset, time
			 FROM trades ORDER BY time DESC`)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, func(r pgx.CollectableRow) (models.TradeRecord, error) {
			var (
				t    models.TradeRecord
				side string
			)
			err := r.Scan(&t.ID, &t.OrderID, &t.Pair, &side, &t.Price, &t.Qty, &t.QuoteQty, &t.Commission, &t.CommissionAsset, &t.Time)
			t.Side = models.Side(side)
			return t, err
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
