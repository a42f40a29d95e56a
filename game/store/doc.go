// Package store provides durable game storage for the battleship game.
//
// The store package implements:
//   - File-backed persistence of complete game aggregates
//   - Thread-safe game lookup with an on-demand memory cache
//   - Unique game ID generation
//   - Cache eviction for idle games
//
// Core Types:
//
// Manager is the main entry point handling game lifecycle. GamePersistence
// is the storage interface, with FilePersistence as the file system
// implementation writing one JSON document per game ID.
//
// Durability:
//
// Persistence is the source of truth. The in-memory map is only a cache:
// a lookup that misses the cache loads the game from storage, and nothing
// is preloaded at startup. A process restart therefore resumes any
// persisted game on first access, including the AI's targeting memory.
//
// Usage:
//
//	persistence, err := store.NewFilePersistence("data/games")
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := store.NewManagerWithPersistence(persistence)
//
//	// Create a new game
//	sess, err := manager.Create()
//
//	// Retrieve a game, loading from disk if not cached
//	sess, err = manager.Get(gameID)
//
// Cleanup:
//
// CleanupExpired evicts idle games from the cache without deleting their
// records. Delete removes a game from both the cache and storage.
package store
