// Package storage is the vault's key store: it keeps the root public
// nodes of derivation trees in a badger database, keyed by their file
// reference, and implements the SeedProvider interface the resolver
// consumes.
package storage

import (
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"

	"github.com/hdvault/hdvault/pkg/hdkey"
	"github.com/hdvault/hdvault/pkg/vault"
	"github.com/hdvault/hdvault/pkg/wire"
)

// RootRecord is the stored form of one vault root: the file reference
// plus the wire encoding of its Bip32Public node.
type RootRecord struct {
	ID      string `badgerhold:"key"`
	Type    int32
	Payload []byte
}

// Store keeps vault root records in a badger database under the data
// directory. It implements vault.SeedProvider.
type Store struct {
	db *badgerhold.Store
}

// NewStore opens (creating if needed) the record store under
// baseDbDir. An empty baseDbDir opens an in-memory store, used by
// tests.
func NewStore(baseDbDir string) (*Store, error) {
	isInMemory := len(baseDbDir) <= 0

	var dbDir string
	if !isInMemory {
		dbDir = filepath.Join(baseDbDir, "db")
	}

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = nil
	if isInMemory {
		opts.InMemory = true
	}

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, fmt.Errorf("opening vault db: %w", err)
	}
	if !isInMemory {
		log.Debugf("vault record store opened at %s", dbDir)
	}
	return &Store{db: db}, nil
}

// PutRoot stores the root node under its file reference, failing if a
// record with the same id already exists.
func (s *Store) PutRoot(file vault.File, node hdkey.Node) error {
	if !node.IsRoot() {
		return fmt.Errorf("%w: only root nodes are stored", hdkey.ErrMalformedNode)
	}
	record := RootRecord{
		ID:      file.ID.String(),
		Type:    int32(file.Type),
		Payload: wire.MarshalNode(node),
	}
	if err := s.db.Insert(record.ID, &record); err != nil {
		if err == badgerhold.ErrKeyExists {
			return fmt.Errorf("root %s already exists", file)
		}
		return err
	}
	return nil
}

// RootNode resolves a file reference to its stored root node. It is
// the vault.SeedProvider implementation.
func (s *Store) RootNode(file vault.File) (hdkey.Node, error) {
	var record RootRecord
	if err := s.db.Get(file.ID.String(), &record); err != nil {
		if err == badgerhold.ErrNotFound {
			return hdkey.Node{}, fmt.Errorf("root %s not found", file)
		}
		return hdkey.Node{}, err
	}
	return wire.UnmarshalNode(record.Payload)
}

// ListRoots returns the file references of every stored root.
func (s *Store) ListRoots() ([]vault.File, error) {
	var records []RootRecord
	if err := s.db.Find(&records, nil); err != nil {
		return nil, err
	}

	files := make([]vault.File, 0, len(records))
	for _, record := range records {
		id, err := uuid.Parse(record.ID)
		if err != nil {
			log.Warnf("skipping record with bad id %q: %s", record.ID, err)
			continue
		}
		files = append(files, vault.File{
			Type: vault.FileTypeFromWire(record.Type),
			ID:   id,
		})
	}
	return files, nil
}

// DeleteRoot removes a stored root. Deleting a missing root is not an
// error.
func (s *Store) DeleteRoot(file vault.File) error {
	if err := s.db.Delete(file.ID.String(), RootRecord{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return err
	}
	return nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
