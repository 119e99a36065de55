// Package entity provides the entity registry for the component inventory.
//
// An entity is a runtime object representing one device capability (a
// sensor reading, a relay, a light). Every entity belongs to exactly one
// Kind, and every kind exposes the same read-only capability: an object id
// and a display name.
//
// # Build-time kind selection
//
// The set of kinds a binary supports is fixed when it is built. The default
// build includes every kind in AllKinds; building with -tags minimal keeps
// only sensor, binary_sensor and switch. Kinds that are compiled out are
// invisible: Register rejects them and nothing enumerates them.
//
// # Architecture
//
//	┌──────────────────┐    ┌──────────────────────┐
//	│     Registry     │    │  SQLiteRepository    │
//	│  (registry.go)   │◀───│  (repository.go)     │
//	│ • per-kind order │    │ • entities table     │
//	│ • thread safety  │    │ • seq = reg. order   │
//	└──────────────────┘    └──────────────────────┘
//	         │
//	         ▼
//	  inventory.Iterator  (walks SupportedKinds × Entities)
//
// # Usage
//
//	repo := entity.NewSQLiteRepository(db.DB)
//	registry := entity.NewRegistry()
//	registry.SetLogger(log)
//	if _, err := registry.Load(ctx, repo); err != nil {
//	    return err
//	}
//	registry.Register(entity.KindSensor, entity.New("temp1", "Temp 1"))
package entity
