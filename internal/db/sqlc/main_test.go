package db

import (
	"context"
	"os"
	"testing"
	
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// testStore is set only when DATABASE_URL points at a migrated database.
var testStore Store

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		connPool, err := pgxpool.New(context.Background(), databaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot create db connection pool")
		}
		if err = connPool.Ping(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("cannot connect to db")
		}
		testStore = NewStore(connPool)
		
		code := m.Run()
		connPool.Close()
		os.Exit(code)
	}
	
	os.Exit(m.Run())
}

func requireTestStore(t *testing.T) Store {
	t.Helper()
	if testStore == nil {
		t.Skip("DATABASE_URL not set")
	}
	return testStore
}
