package storage

import (
	"fmt"
	"log"
)

func NewRunStore(storeType, connectionString string) (store RunStore, err error) {
	switch storeType {
	case "sqlite":
		store, err = NewSQLiteStore(connectionString)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", storeType)
	}

	// Ensure the schema exists (idempotent), important for in-memory SQLite
	log.Print("initializing run store schema (ensuring tables exist)")
	if err = store.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize run store: %w", err)
	}

	return store, nil
}
